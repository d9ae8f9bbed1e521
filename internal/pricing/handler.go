package pricing

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/httpapi"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Mount(r chi.Router) {
	r.Route("/pricing", func(r chi.Router) {
		r.Get("/quote", h.quote)
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.listRules)
			r.Post("/", h.createRule)
			r.Get("/{id}", h.getRule)
			r.Put("/{id}", h.updateRule)
			r.Delete("/{id}", h.deleteRule)
		})
	})
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID := strings.TrimSpace(q.Get("productId"))
	userID := strings.TrimSpace(q.Get("userId"))
	rawPrice := strings.TrimSpace(q.Get("basePrice"))
	rawTier := strings.TrimSpace(q.Get("loyaltyTier"))
	if productID == "" || userID == "" || rawPrice == "" || rawTier == "" {
		httpapi.WriteError(w, apperrors.Invalid(apperrors.CodeValidation, "productId, userId, basePrice and loyaltyTier are required"))
		return
	}
	basePrice, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || math.IsInf(basePrice, 0) || !(basePrice > 0) {
		httpapi.WriteError(w, apperrors.Invalid(apperrors.CodeValidation, "basePrice must be a positive number"))
		return
	}
	tier, ok := loyalty.Parse(rawTier)
	if !ok {
		httpapi.WriteError(w, apperrors.Invalid(apperrors.CodeValidation, "loyaltyTier must be one of BRONZE, SILVER, GOLD"))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, h.svc.Quote(productID, userID, basePrice, tier.String()))
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	httpapi.WriteJSON(w, http.StatusOK, h.svc.ListRules())
}

func (h *Handler) getRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.svc.GetRule(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rule)
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var in CreateRuleInput
	if err := httpapi.DecodeJSON(r, &in); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	rule, err := h.svc.CreateRule(r.Context(), in)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, rule)
}

func (h *Handler) updateRule(w http.ResponseWriter, r *http.Request) {
	var in UpdateRuleInput
	if err := httpapi.DecodeJSON(r, &in); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	rule, err := h.svc.UpdateRule(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rule)
}

func (h *Handler) deleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
