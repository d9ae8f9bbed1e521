package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/pricing"
	"github.com/nazeru/contractforge-go/internal/user"
)

const (
	CodeProductNotFound = "PRODUCT_NOT_FOUND"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodePricingAPIError = "PRICING_API_ERROR"
)

type InventoryClient struct {
	c *Client
}

func NewInventoryClient(baseURL string, hc *http.Client) *InventoryClient {
	return &InventoryClient{c: NewClient("INVENTORY", baseURL, hc)}
}

func (ic *InventoryClient) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	var out []inventory.Product
	if err := ic.c.GetJSON(ctx, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (ic *InventoryClient) GetProduct(ctx context.Context, id string) (inventory.Product, error) {
	var p inventory.Product
	if err := ic.c.GetJSON(ctx, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return inventory.Product{}, remap(err, ic.c.NotFoundCode(), CodeProductNotFound)
	}
	return p, nil
}

type UserClient struct {
	c *Client
}

func NewUserClient(baseURL string, hc *http.Client) *UserClient {
	return &UserClient{c: NewClient("USER", baseURL, hc)}
}

func (uc *UserClient) ListUsers(ctx context.Context) ([]user.User, error) {
	var out []user.User
	if err := uc.c.GetJSON(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UserClient) GetUser(ctx context.Context, id string) (user.User, error) {
	var u user.User
	if err := uc.c.GetJSON(ctx, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return user.User{}, remap(err, uc.c.NotFoundCode(), CodeUserNotFound)
	}
	return u, nil
}

type QuoteRequest struct {
	ProductID   string
	UserID      string
	BasePrice   float64
	LoyaltyTier string
}

type PricingClient struct {
	c *Client
}

func NewPricingClient(baseURL string, hc *http.Client) *PricingClient {
	return &PricingClient{c: NewClient("PRICING", baseURL, hc)}
}

func (pc *PricingClient) GetQuote(ctx context.Context, req QuoteRequest) (pricing.Quote, error) {
	q := url.Values{}
	q.Set("productId", req.ProductID)
	q.Set("userId", req.UserID)
	q.Set("basePrice", strconv.FormatFloat(req.BasePrice, 'f', -1, 64))
	q.Set("loyaltyTier", req.LoyaltyTier)

	var quote pricing.Quote
	if err := pc.c.GetJSON(ctx, "/pricing/quote", q, &quote); err != nil {
		return pricing.Quote{}, err
	}
	return quote, nil
}
