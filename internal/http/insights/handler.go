package insights

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fintwin-app/fintwin/internal/http/auth"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/whatif"
)

type Handler struct {
	svc *insight.Service
}

func NewHandler(svc *insight.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.snapshot)
	r.Get("/universes", h.universes)
	r.Post("/whatif", h.whatIf)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	snap, err := h.svc.Snapshot(r.Context(), auth.UserID(r.Context()), force)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) universes(w http.ResponseWriter, r *http.Request) {
	universes, err := h.svc.Universes(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(universes); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) whatIf(w http.ResponseWriter, r *http.Request) {
	var req whatif.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.WhatIf(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, whatif.ErrUnknownScenario) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
