package suggest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/suggest"
)

type Handler struct {
	svc *suggest.Service
}

func NewHandler(svc *suggest.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/unit", h.unit)
}

type unitRequest struct {
	ProductName string `json:"product_name"`
}

type unitResponse struct {
	Unit string `json:"unit"`
}

func (h *Handler) unit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	unit, err := h.svc.Unit(r.Context(), req.ProductName)
	if err != nil {
		switch {
		case errors.Is(err, suggest.ErrMissingField):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, suggest.ErrUnavailable):
			http.Error(w, "suggestions are not configured", http.StatusServiceUnavailable)
		default:
			http.Error(w, "suggestion failed", http.StatusBadGateway)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(unitResponse{Unit: unit}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
