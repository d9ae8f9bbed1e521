// Package checkout composes the inventory, user and pricing services into a
// checkout preview. It owns no state; every preview is built from fresh
// upstream reads.
package checkout

import (
	"context"
	"strings"

	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/internal/pricing"
	"github.com/nazeru/contractforge-go/internal/upstream"
	"github.com/nazeru/contractforge-go/internal/user"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/logging"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

const ServiceName = "orchestrator-service"

// Step names a stage of preview assembly in the logs.
type Step string

const (
	StepFetchProduct Step = "fetch_product"
	StepFetchUser    Step = "fetch_user"
	StepFetchQuote   Step = "fetch_quote"
)

type ProductFetcher interface {
	GetProduct(ctx context.Context, id string) (inventory.Product, error)
}

type UserFetcher interface {
	GetUser(ctx context.Context, id string) (user.User, error)
}

type QuoteFetcher interface {
	GetQuote(ctx context.Context, req upstream.QuoteRequest) (pricing.Quote, error)
}

type ProductSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	BasePrice float64 `json:"basePrice"`
}

type UserSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	LoyaltyTier loyalty.Tier `json:"loyaltyTier"`
}

type Preview struct {
	Product ProductSummary `json:"product"`
	User    UserSummary    `json:"user"`
	Pricing pricing.Quote  `json:"pricing"`
}

type Service struct {
	products ProductFetcher
	users    UserFetcher
	quotes   QuoteFetcher
}

func NewService(products ProductFetcher, users UserFetcher, quotes QuoteFetcher) *Service {
	return &Service{products: products, users: users, quotes: quotes}
}

// BuildCheckoutPreview fetches the product, then the user, then a quote, stopping at
// the first failure. Errors come back as returned by the upstream client;
// ResolveError turns them into the response triple.
func (s *Service) BuildCheckoutPreview(ctx context.Context, productID, userID string) (Preview, error) {
	productID = strings.TrimSpace(productID)
	userID = strings.TrimSpace(userID)
	if productID == "" || userID == "" {
		return Preview{}, apperrors.Invalid(CodeInvalidRequest, "productId and userId are required")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return Preview{}, stepFailed(ctx, StepFetchProduct, err)
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return Preview{}, stepFailed(ctx, StepFetchUser, err)
	}

	quote, err := s.quotes.GetQuote(ctx, upstream.QuoteRequest{
		ProductID:   product.ID,
		UserID:      u.ID,
		BasePrice:   product.Price,
		LoyaltyTier: u.LoyaltyTier.String(),
	})
	if err != nil {
		return Preview{}, stepFailed(ctx, StepFetchQuote, err)
	}

	return Preview{
		Product: ProductSummary{ID: product.ID, Name: product.Name, Stock: product.Stock, BasePrice: product.Price},
		User:    UserSummary{ID: u.ID, Name: u.Name, LoyaltyTier: u.LoyaltyTier},
		Pricing: quote,
	}, nil
}

func stepFailed(ctx context.Context, step Step, err error) error {
	logging.Log(logging.Fields{
		Service:   ServiceName,
		RequestID: requestid.From(ctx),
		Step:      string(step),
		Status:    "failed",
		Code:      apperrors.CodeOf(err),
		Message:   err.Error(),
	})
	return err
}
