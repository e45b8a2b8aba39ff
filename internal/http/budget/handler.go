package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/http/auth"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	Category     string        `json:"category"`
	MonthlyLimit int64         `json:"monthly_limit"`
	Period       budget.Period `json:"period,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	if req.MonthlyLimit <= 0 {
		http.Error(w, "monthly_limit must be positive", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), budget.CreateParams{
		Category:     req.Category,
		MonthlyLimit: req.MonthlyLimit,
		Period:       req.Period,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(budgets)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	Category     *string        `json:"category,omitempty"`
	MonthlyLimit *int64         `json:"monthly_limit,omitempty"`
	Period       *budget.Period `json:"period,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Category != nil {
		b.Category = *req.Category
	}

	if req.MonthlyLimit != nil {
		b.MonthlyLimit = *req.MonthlyLimit
	}

	if req.Period != nil {
		b.Period = *req.Period
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
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

type budgetResponse struct {
	ID           uuid.UUID     `json:"id"`
	Category     string        `json:"category"`
	MonthlyLimit int64         `json:"monthly_limit"`
	Period       budget.Period `json:"period"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:           b.ID,
		Category:     b.Category,
		MonthlyLimit: b.MonthlyLimit,
		Period:       b.Period,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}
