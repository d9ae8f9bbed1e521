package pricing

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
)

const (
	CodeInvalidRate = "INVALID_RATE"
	CodeInvalidTier = "INVALID_TIER"
)

// DiscountRule grants rate off the base price to users of LoyaltyTier while
// Active. Several rules may target one tier; the first active one wins.
type DiscountRule struct {
	ID          string       `json:"id" yaml:"id"`
	LoyaltyTier loyalty.Tier `json:"loyaltyTier" yaml:"loyaltyTier"`
	Rate        float64      `json:"rate" yaml:"rate"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Active      bool         `json:"active" yaml:"active"`
}

func RuleKey(r DiscountRule) string { return r.ID }

type CreateRuleInput struct {
	ID          string   `json:"id"`
	LoyaltyTier string   `json:"loyaltyTier"`
	Rate        *float64 `json:"rate"`
	Description string   `json:"description"`
	Active      *bool    `json:"active"`
}

type UpdateRuleInput struct {
	LoyaltyTier *string  `json:"loyaltyTier"`
	Rate        *float64 `json:"rate"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
}

func (in CreateRuleInput) rule() (DiscountRule, error) {
	if strings.TrimSpace(in.LoyaltyTier) == "" || in.Rate == nil {
		return DiscountRule{}, apperrors.Invalid(apperrors.CodeValidation, "loyaltyTier and rate are required")
	}
	tier, err := parseTier(in.LoyaltyTier)
	if err != nil {
		return DiscountRule{}, err
	}
	if err := validateRate(*in.Rate); err != nil {
		return DiscountRule{}, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return DiscountRule{
		ID:          id,
		LoyaltyTier: tier,
		Rate:        *in.Rate,
		Description: strings.TrimSpace(in.Description),
		Active:      active,
	}, nil
}

func (in UpdateRuleInput) apply(r DiscountRule) (DiscountRule, error) {
	if in.LoyaltyTier != nil {
		tier, err := parseTier(*in.LoyaltyTier)
		if err != nil {
			return DiscountRule{}, err
		}
		r.LoyaltyTier = tier
	}
	if in.Rate != nil {
		if err := validateRate(*in.Rate); err != nil {
			return DiscountRule{}, err
		}
		r.Rate = *in.Rate
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	return r, nil
}

func validateRate(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return apperrors.Invalid(CodeInvalidRate, "rate must be between 0 and 1")
	}
	return nil
}

func parseTier(s string) (loyalty.Tier, error) {
	tier, ok := loyalty.Parse(s)
	if !ok {
		return "", apperrors.Invalid(CodeInvalidTier, "loyaltyTier must be one of BRONZE, SILVER, GOLD")
	}
	return tier, nil
}
