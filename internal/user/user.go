package user

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
)

const CodeInvalidTier = "INVALID_TIER"

type User struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	LoyaltyTier loyalty.Tier `json:"loyaltyTier" yaml:"loyaltyTier"`
}

func UserKey(u User) string { return u.ID }

type CreateInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LoyaltyTier string `json:"loyaltyTier"`
}

type UpdateInput struct {
	Name        *string `json:"name"`
	LoyaltyTier *string `json:"loyaltyTier"`
}

func (in CreateInput) user() (User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.LoyaltyTier) == "" {
		return User{}, apperrors.Invalid(apperrors.CodeValidation, "name and loyaltyTier are required")
	}
	tier, err := parseTier(in.LoyaltyTier)
	if err != nil {
		return User{}, err
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return User{ID: id, Name: name, LoyaltyTier: tier}, nil
}

func (in UpdateInput) apply(u User) (User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return User{}, apperrors.Invalid(apperrors.CodeValidation, "name cannot be empty")
		}
		u.Name = name
	}
	if in.LoyaltyTier != nil {
		tier, err := parseTier(*in.LoyaltyTier)
		if err != nil {
			return User{}, err
		}
		u.LoyaltyTier = tier
	}
	return u, nil
}

func parseTier(s string) (loyalty.Tier, error) {
	tier, ok := loyalty.Parse(s)
	if !ok {
		return "", apperrors.Invalid(CodeInvalidTier, "loyaltyTier must be one of BRONZE, SILVER, GOLD")
	}
	return tier, nil
}
