package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/nazeru/contractforge-go/internal/checkout"
	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/upstream"
	"github.com/nazeru/contractforge-go/internal/user"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

type api struct {
	base string
	hc   *http.Client
}

func (a *api) client() *upstream.Client {
	return upstream.NewClient("ORCHESTRATOR", a.base, a.hc)
}

// Each call gets its own request id so it can be found in the service logs.
func (a *api) ctx(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return requestid.With(parent, "cli-"+uuid.NewString())
}

func (a *api) Preview(ctx context.Context, productID, userID string) (checkout.Preview, error) {
	var p checkout.Preview
	q := url.Values{}
	q.Set("productId", productID)
	q.Set("userId", userID)
	if err := a.client().GetJSON(a.ctx(ctx), "/checkout/preview", q, &p); err != nil {
		return checkout.Preview{}, describe(err)
	}
	return p, nil
}

func (a *api) Products(ctx context.Context) ([]inventory.Product, error) {
	var out []inventory.Product
	if err := a.client().GetJSON(a.ctx(ctx), "/catalog/products", nil, &out); err != nil {
		return nil, describe(err)
	}
	return out, nil
}

func (a *api) Users(ctx context.Context) ([]user.User, error) {
	var out []user.User
	if err := a.client().GetJSON(a.ctx(ctx), "/catalog/users", nil, &out); err != nil {
		return nil, describe(err)
	}
	return out, nil
}

func describe(err error) error {
	ae, ok := apperrors.As(err)
	if !ok {
		return err
	}
	if ae.Status == 0 {
		return fmt.Errorf("orchestrator unreachable: %w", err)
	}
	return fmt.Errorf("status %d: %s", ae.Status, ae.Message)
}
