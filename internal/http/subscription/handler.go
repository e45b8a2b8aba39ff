package subscription

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/http/auth"
	"github.com/fintwin-app/fintwin/internal/subscription"
)

type Handler struct {
	svc *subscription.Service
}

func NewHandler(svc *subscription.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/cancel", h.cancel)
	r.Delete("/{id}", h.delete)
}

type createSubscriptionRequest struct {
	Name         string                    `json:"name"`
	Price        int64                     `json:"price"`
	BillingCycle subscription.BillingCycle `json:"billing_cycle,omitempty"`
	Trial        bool                      `json:"trial,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if req.Price <= 0 {
		http.Error(w, "price must be positive", http.StatusBadRequest)
		return
	}

	sub, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), subscription.CreateParams{
		Name:         req.Name,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
		Trial:        req.Trial,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sub)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	subs, err := h.svc.List(r.Context(), auth.UserID(r.Context()), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(subs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSubscriptionRequest struct {
	Name         *string                    `json:"name,omitempty"`
	Price        *int64                     `json:"price,omitempty"`
	BillingCycle *subscription.BillingCycle `json:"billing_cycle,omitempty"`
	Trial        *bool                      `json:"trial,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}

	if req.Price != nil {
		sub.Price = *req.Price
	}

	if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}

	if req.Trial != nil {
		sub.Trial = *req.Trial
	}

	if err := h.svc.Update(r.Context(), sub); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sub)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(r.Context(), auth.UserID(r.Context()), id); err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type subscriptionResponse struct {
	ID           uuid.UUID                 `json:"id"`
	Name         string                    `json:"name"`
	Price        int64                     `json:"price"`
	BillingCycle subscription.BillingCycle `json:"billing_cycle"`
	MonthlyCost  int64                     `json:"monthly_cost"`
	Active       bool                      `json:"active"`
	Trial        bool                      `json:"trial"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    *time.Time                `json:"updated_at,omitempty"`
}

func toResponse(sub *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:           sub.ID,
		Name:         sub.Name,
		Price:        sub.Price,
		BillingCycle: sub.BillingCycle,
		MonthlyCost:  sub.MonthlyCost(),
		Active:       sub.Active,
		Trial:        sub.Trial,
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}
}

func toResponseList(subs []*subscription.Subscription) []subscriptionResponse {
	resp := make([]subscriptionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = toResponse(sub)
	}

	return resp
}
