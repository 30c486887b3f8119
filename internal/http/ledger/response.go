package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

type entryResponse struct {
	ID          uuid.UUID       `json:"id"`
	VoucherID   string          `json:"voucher_id"`
	EntryDate   string          `json:"entry_date"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	QuantityIn  decimal.Decimal `json:"quantity_in"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
	AmountIn    decimal.Decimal `json:"amount_in"`
	AmountOut   decimal.Decimal `json:"amount_out"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		VoucherID:   e.VoucherID,
		EntryDate:   e.EntryDate.Format(time.DateOnly),
		ProductName: e.ProductName,
		Unit:        e.Unit,
		UnitPrice:   e.UnitPrice,
		QuantityIn:  e.QuantityIn,
		QuantityOut: e.QuantityOut,
		AmountIn:    e.AmountIn,
		AmountOut:   e.AmountOut,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}

func toResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
