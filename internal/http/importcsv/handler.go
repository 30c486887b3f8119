package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/importer"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

type Handler struct {
	parser    *importer.Parser
	ledgerSvc *ledger.Service
}

func NewHandler(parser *importer.Parser, ledgerSvc *ledger.Service) *Handler {
	return &Handler{parser: parser, ledgerSvc: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.ledgerSvc.ImportBatch(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, ledger.ErrMissingField) || errors.Is(err, ledger.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := importResponse{
		Imported: len(result.Imported),
		Skipped:  result.Skipped,
	}
	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
