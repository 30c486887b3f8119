package exportcsv

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ledger", h.downloadLedger)
}

func (h *Handler) downloadLedger(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.svc.Filename(time.Now())))

	// Headers are already sent once the first row is written, so a late
	// failure can only be logged, not reported.
	if _, err := h.svc.WriteLedgerCSV(r.Context(), userID, w); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}
