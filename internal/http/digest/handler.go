package digest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintwin-app/fintwin/internal/digest"
	"github.com/fintwin-app/fintwin/internal/http/auth"
)

type Handler struct {
	svc *digest.Service
}

func NewHandler(svc *digest.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.preview)
	r.Post("/send", h.send)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Build(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(d); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sendRequest struct {
	Email string `json:"email"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Send(r.Context(), auth.UserID(r.Context()), req.Email); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
