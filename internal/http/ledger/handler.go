package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createEntryRequest struct {
	EntryDate   string          `json:"entry_date,omitempty"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	QuantityIn  decimal.Decimal `json:"quantity_in"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
	Note        string          `json:"note,omitempty"`
}

type createEntryResponse struct {
	Entry   entryResponse `json:"entry"`
	Warning string        `json:"warning,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.CreateParams{
		ProductName: req.ProductName,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		QuantityIn:  req.QuantityIn,
		QuantityOut: req.QuantityOut,
		Note:        req.Note,
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

	resp := createEntryResponse{}

	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrMissingField), errors.Is(err, ledger.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ledger.ErrReconcile):
		// The entry is saved; only the inventory update failed. Report
		// success with a warning instead of losing the write.
		resp.Warning = err.Error()
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp.Entry = toResponse(entry)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
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

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
