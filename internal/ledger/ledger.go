package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidQuantity is returned when neither quantity in nor quantity out
	// is positive.
	ErrInvalidQuantity = errors.New("quantity in or quantity out must be greater than zero")
	// ErrDuplicateVoucher is returned by the store when an entry's voucher id
	// is already taken for the user. Generated ids can collide within a day;
	// Record regenerates and retries.
	ErrDuplicateVoucher = errors.New("voucher id already exists")
	// ErrReconcile marks a partial failure: the ledger entry was persisted but
	// the inventory update did not go through. There is no rollback and no
	// automatic retry; the caller must surface the inconsistency.
	ErrReconcile = errors.New("inventory reconciliation failed")
)

// Entry is one inbound/outbound stock transaction in the detailed ledger
// (sổ chi tiết). Entries are append-only: no update or delete.
type Entry struct {
	ID          uuid.UUID
	UserID      string
	VoucherID   string
	EntryDate   time.Time
	ProductName string
	Unit        string
	UnitPrice   decimal.Decimal
	QuantityIn  decimal.Decimal
	QuantityOut decimal.Decimal
	AmountIn    decimal.Decimal
	AmountOut   decimal.Decimal
	Note        string
	CreatedAt   time.Time
}

// Delta is the signed quantity change this entry applies to inventory.
func (e *Entry) Delta() decimal.Decimal {
	return e.QuantityIn.Sub(e.QuantityOut)
}
