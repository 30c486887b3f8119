package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/voucher"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, userID string) ([]*Entry, error)

	BeginImport(ctx context.Context, userID string) (ImportTx, error)
}

// ImportTx scopes a batch re-import of previously exported entries. The store
// serializes concurrent imports for the same user behind it.
type ImportTx interface {
	ExistingVouchers(ctx context.Context, voucherIDs []string) (map[string]bool, error)
	CreateEntries(ctx context.Context, entries []*Entry) error
	Commit() error
	Rollback() error
}

// Reconciler applies a signed quantity delta to the inventory item matching
// name, overwriting unit and cost last-write-wins.
type Reconciler interface {
	Reconcile(ctx context.Context, userID, name, unit string, cost, delta decimal.Decimal) error
}

type Service struct {
	repo       Repository
	reconciler Reconciler
	hub        *watch.Hub
	now        func() time.Time
}

func NewService(repo Repository, reconciler Reconciler, hub *watch.Hub) *Service {
	return &Service{
		repo:       repo,
		reconciler: reconciler,
		hub:        hub,
		now:        time.Now,
	}
}

type CreateParams struct {
	EntryDate   time.Time
	ProductName string
	Unit        string
	UnitPrice   decimal.Decimal
	QuantityIn  decimal.Decimal
	QuantityOut decimal.Decimal
	Note        string
}

// Record validates params, derives the amounts, stamps a fresh voucher id and
// persists the entry, then synchronously reconciles inventory with the entry's
// quantity delta.
//
// The two writes are not atomic. When reconciliation fails the entry is
// already persisted; Record then returns the entry together with an error
// wrapping ErrReconcile so the caller can report the inconsistency.
func (s *Service) Record(ctx context.Context, userID string, params CreateParams) (*Entry, error) {
	if params.ProductName == "" || params.Unit == "" || params.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: product name, unit and a non-negative unit price are required", ErrMissingField)
	}

	if !params.QuantityIn.IsPositive() && !params.QuantityOut.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	if params.QuantityIn.IsNegative() || params.QuantityOut.IsNegative() {
		return nil, ErrInvalidQuantity
	}

	entryDate := params.EntryDate
	if entryDate.IsZero() {
		entryDate = s.now()
	}

	e := &Entry{
		UserID:      userID,
		EntryDate:   entryDate,
		ProductName: params.ProductName,
		Unit:        params.Unit,
		UnitPrice:   params.UnitPrice,
		QuantityIn:  params.QuantityIn,
		QuantityOut: params.QuantityOut,
		AmountIn:    params.QuantityIn.Mul(params.UnitPrice),
		AmountOut:   params.QuantityOut.Mul(params.UnitPrice),
		Note:        params.Note,
	}

	if err := s.createWithFreshVoucher(ctx, e); err != nil {
		return nil, err
	}

	s.hub.Publish(userID, watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated, Payload: e})

	if err := s.reconciler.Reconcile(ctx, userID, e.ProductName, e.Unit, e.UnitPrice, e.Delta()); err != nil {
		return e, fmt.Errorf("%w: %w", ErrReconcile, err)
	}

	return e, nil
}

// voucherAttempts bounds how often a colliding voucher id is regenerated
// before giving up. Ids draw from 26^3 suffixes per day, so a second
// collision in a row is already vanishingly rare.
const voucherAttempts = 5

// createWithFreshVoucher stamps a generated voucher id and persists the
// entry, regenerating the id on a same-day collision.
func (s *Service) createWithFreshVoucher(ctx context.Context, e *Entry) error {
	var err error

	for range voucherAttempts {
		e.VoucherID = voucher.Generate(s.now())

		err = s.repo.CreateEntry(ctx, e)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrDuplicateVoucher) {
			return fmt.Errorf("creating ledger entry: %w", err)
		}
	}

	return fmt.Errorf("creating ledger entry: %w", err)
}

// List returns all entries for the user, newest first (entry date, then
// creation time).
func (s *Service) List(ctx context.Context, userID string) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}

// ImportParams is a fully-specified entry read back from an exported CSV.
// Unlike CreateParams it carries the original voucher id.
type ImportParams struct {
	VoucherID   string
	EntryDate   time.Time
	ProductName string
	Unit        string
	UnitPrice   decimal.Decimal
	QuantityIn  decimal.Decimal
	QuantityOut decimal.Decimal
	Note        string
}

type ImportResult struct {
	Imported []*Entry
	Skipped  []string // voucher ids already present
}

// ImportBatch restores previously exported entries, skipping voucher ids that
// already exist for the user. Restored entries never re-trigger inventory
// reconciliation: their deltas were applied when they were first recorded, and
// there is no idempotency key that would make re-application safe.
func (s *Service) ImportBatch(ctx context.Context, userID string, params []ImportParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for _, p := range params {
		if p.VoucherID == "" || p.ProductName == "" || p.Unit == "" {
			return nil, fmt.Errorf("%w: voucher id, product name and unit are required on every row", ErrMissingField)
		}

		if !p.QuantityIn.IsPositive() && !p.QuantityOut.IsPositive() {
			return nil, fmt.Errorf("voucher %s: %w", p.VoucherID, ErrInvalidQuantity)
		}
	}

	itx, err := s.repo.BeginImport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	vouchers := make([]string, len(params))
	for i, p := range params {
		vouchers[i] = p.VoucherID
	}

	existing, err := itx.ExistingVouchers(ctx, vouchers)
	if err != nil {
		return nil, fmt.Errorf("checking existing vouchers: %w", err)
	}

	result := &ImportResult{}

	var entries []*Entry

	for _, p := range params {
		if existing[p.VoucherID] {
			result.Skipped = append(result.Skipped, p.VoucherID)
			continue
		}

		entries = append(entries, &Entry{
			UserID:      userID,
			VoucherID:   p.VoucherID,
			EntryDate:   p.EntryDate,
			ProductName: p.ProductName,
			Unit:        p.Unit,
			UnitPrice:   p.UnitPrice,
			QuantityIn:  p.QuantityIn,
			QuantityOut: p.QuantityOut,
			AmountIn:    p.QuantityIn.Mul(p.UnitPrice),
			AmountOut:   p.QuantityOut.Mul(p.UnitPrice),
			Note:        p.Note,
		})
	}

	if len(entries) > 0 {
		if err := itx.CreateEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("restoring entries: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = entries

	for _, e := range entries {
		s.hub.Publish(userID, watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated, Payload: e})
	}

	return result, nil
}
