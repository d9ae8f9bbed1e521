package checkout

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/user"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/httpapi"
	"github.com/nazeru/contractforge-go/pkg/metrics"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]inventory.Product, error)
}

type UserLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

type Handler struct {
	svc      *Service
	products ProductLister
	users    UserLister
	metrics  *metrics.ServerMetrics
}

// NewHandler wires the checkout routes. m may be nil.
func NewHandler(svc *Service, products ProductLister, users UserLister, m *metrics.ServerMetrics) *Handler {
	return &Handler{svc: svc, products: products, users: users, metrics: m}
}

func (h *Handler) Mount(r chi.Router) {
	r.Get("/catalog/products", h.listProducts)
	r.Get("/catalog/users", h.listUsers)
	r.Get("/checkout/preview", h.preview)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.svc.BuildCheckoutPreview(r.Context(), q.Get("productId"), q.Get("userId"))
	if err != nil {
		h.fail(w, err, ResolveError)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.fail(w, err, resolveProxyError)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.fail(w, err, resolveProxyError)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) fail(w http.ResponseWriter, err error, resolve httpapi.ResolveFunc) {
	status, code, msg := resolve(err)
	if h.metrics != nil {
		h.metrics.Upstream.WithLabelValues(code).Inc()
	}
	httpapi.WriteResolved(w, status, code, msg)
}

// resolveProxyError answers every catalog proxy failure with 502, keeping
// the upstream's code when it has one.
func resolveProxyError(err error) (int, string, string) {
	if ae, ok := apperrors.As(err); ok {
		msg := ae.Message
		if msg == "" {
			msg = msgUpstreamUnavailable
		}
		return http.StatusBadGateway, ae.Code, msg
	}
	return http.StatusBadGateway, CodeUpstreamUnavailable, msgUpstreamUnavailable
}
