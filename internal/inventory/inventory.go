package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateName is returned when defining an item whose name is taken.
	ErrDuplicateName = errors.New("an item with this name already exists")
	// ErrNotFound is returned when editing or deleting a missing item.
	ErrNotFound = errors.New("inventory item not found")
)

// Item is one tracked stock line. Items are keyed by a stable uuid, but the
// ledger links to them by exact name match; renames are rejected so the name
// link cannot be silently orphaned from this side.
type Item struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	Cost      decimal.Decimal
	Threshold decimal.Decimal
	CreatedAt time.Time
}

// DefaultThreshold is the low-stock threshold given to items created
// implicitly by reconciliation.
var DefaultThreshold = decimal.NewFromInt(1)

// LowStock reports whether the item is at or below its threshold. The
// comparison is non-strict: quantity == threshold counts as low stock.
func (i *Item) LowStock() bool {
	return i.Quantity.LessThanOrEqual(i.Threshold)
}
