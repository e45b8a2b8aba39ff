package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/goal"
	"github.com/fintwin-app/fintwin/internal/http/auth"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/contribute", h.contribute)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount int64  `json:"target_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if req.TargetAmount <= 0 {
		http.Error(w, "target_amount must be positive", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), goal.CreateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(goals)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type contributeRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Contribute(r.Context(), auth.UserID(r.Context()), id, req.Amount)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateGoalRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetAmount *int64  `json:"target_amount,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}

	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}

	if err := h.svc.Update(r.Context(), g); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
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

type goalResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	TargetAmount int64      `json:"target_amount"`
	SavedAmount  int64      `json:"saved_amount"`
	Progress     float64    `json:"progress"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Progress:     g.Progress(),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}
