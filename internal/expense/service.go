package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/voucher"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
)

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, userID string) ([]*Entry, error)
}

type Service struct {
	repo Repository
	hub  *watch.Hub
	now  func() time.Time
}

func NewService(repo Repository, hub *watch.Hub) *Service {
	return &Service{repo: repo, hub: hub, now: time.Now}
}

type CreateParams struct {
	EntryDate   time.Time
	Description string
	TotalAmount decimal.Decimal
	Category    Category
}

// Record validates and appends one expense entry. The expense ledger is
// independent of the detailed ledger: no inventory reconciliation happens.
func (s *Service) Record(ctx context.Context, userID string, params CreateParams) (*Entry, error) {
	if params.Description == "" {
		return nil, fmt.Errorf("%w: description", ErrMissingField)
	}

	if !params.TotalAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if !params.Category.Valid() {
		return nil, fmt.Errorf("%q: %w", params.Category, ErrInvalidCategory)
	}

	entryDate := params.EntryDate
	if entryDate.IsZero() {
		entryDate = s.now()
	}

	e := &Entry{
		UserID:      userID,
		VoucherID:   voucher.GenerateExpense(s.now()),
		EntryDate:   entryDate,
		Description: params.Description,
		TotalAmount: params.TotalAmount,
		Category:    params.Category,
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense entry: %w", err)
	}

	s.hub.Publish(userID, watch.Event{Collection: watch.CollectionExpenses, Action: watch.ActionCreated, Payload: e})

	return e, nil
}

// List returns all expense entries for the user, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}
