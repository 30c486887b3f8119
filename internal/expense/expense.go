package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidAmount is returned when the total amount is not positive.
	ErrInvalidAmount = errors.New("total amount must be greater than zero")
	// ErrInvalidCategory is returned for a category outside the fixed set.
	ErrInvalidCategory = errors.New("unknown expense category")
)

// Category is one of the fixed operating-expense categories from the
// Vietnamese small-business expense ledger (sổ chi phí sản xuất, kinh doanh).
type Category string

const (
	CategoryGoods       Category = "goods"
	CategoryLabor       Category = "labor"
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
	CategoryTelecom     Category = "telecom"
	CategoryRent        Category = "rent"
	CategoryManagement  Category = "management"
	CategoryOther       Category = "other"
)

var labels = map[Category]string{
	CategoryGoods:       "Chi phí nhập hàng",
	CategoryLabor:       "Chi phí nhân công",
	CategoryElectricity: "Chi phí điện",
	CategoryWater:       "Chi phí nước",
	CategoryTelecom:     "Chi phí viễn thông",
	CategoryRent:        "Chi phí thuê kho bãi, mặt bằng kinh doanh",
	CategoryManagement:  "Chi phí quản lí (văn phòng phẩm, công cụ, dụng cụ,...)",
	CategoryOther:       "Chi phí khác (hội nghị, công tác phí, thanh lý, nhượng bán tài sản cố định, thuê ngoài khác,...)",
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label returns the Vietnamese display name for the category.
func (c Category) Label() string {
	return labels[c]
}

// Categories returns every valid category, for populating selectors.
func Categories() []Category {
	return []Category{
		CategoryGoods,
		CategoryLabor,
		CategoryElectricity,
		CategoryWater,
		CategoryTelecom,
		CategoryRent,
		CategoryManagement,
		CategoryOther,
	}
}

// Entry is one row of the operating-expense ledger. Append-only.
type Entry struct {
	ID          uuid.UUID
	UserID      string
	VoucherID   string
	EntryDate   time.Time
	Description string
	TotalAmount decimal.Decimal
	Category    Category
	CreatedAt   time.Time
}
