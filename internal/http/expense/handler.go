package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/expense"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
}

type createExpenseRequest struct {
	EntryDate   string           `json:"entry_date,omitempty"`
	Description string           `json:"description"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Category    expense.Category `json:"category"`
}

type expenseResponse struct {
	ID          uuid.UUID        `json:"id"`
	VoucherID   string           `json:"voucher_id"`
	EntryDate   string           `json:"entry_date"`
	Description string           `json:"description"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Category    expense.Category `json:"category"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toResponse(e *expense.Entry) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		VoucherID:   e.VoucherID,
		EntryDate:   e.EntryDate.Format(time.DateOnly),
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := expense.CreateParams{
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		Category:    req.Category,
	}

	if req.EntryDate != "" {
		date, err := time.Parse(time.DateOnly, req.EntryDate)
		if err != nil {
			http.Error(w, "invalid entry_date", http.StatusBadRequest)
			return
		}

		params.EntryDate = date
	}

	entry, err := h.svc.Record(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, expense.ErrMissingField) ||
			errors.Is(err, expense.ErrInvalidAmount) ||
			errors.Is(err, expense.ErrInvalidCategory) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	entries, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]expenseResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type categoryResponse struct {
	Value expense.Category `json:"value"`
	Label string           `json:"label"`
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	cats := expense.Categories()

	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = categoryResponse{Value: c, Label: c.Label()}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
