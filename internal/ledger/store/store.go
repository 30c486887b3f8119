package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	id, user_id, voucher_id, entry_date, product_name, unit, unit_price,
	quantity_in, quantity_out, amount_in, amount_out, note, created_at
`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var note sql.NullString

	if err := s.Scan(
		&e.ID, &e.UserID, &e.VoucherID, &e.EntryDate, &e.ProductName, &e.Unit, &e.UnitPrice,
		&e.QuantityIn, &e.QuantityOut, &e.AmountIn, &e.AmountOut, &note, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Note = note.String

	return &e, nil
}

const insertEntry = `
	INSERT INTO ledger_entries
		(user_id, voucher_id, entry_date, product_name, unit, unit_price,
		 quantity_in, quantity_out, amount_in, amount_out, note, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	err := s.db.QueryRowContext(ctx, insertEntry,
		e.UserID, e.VoucherID, e.EntryDate, e.ProductName, e.Unit, e.UnitPrice,
		e.QuantityIn, e.QuantityOut, e.AmountIn, e.AmountOut, e.Note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%q: %w", e.VoucherID, ledger.ErrDuplicateVoucher)
		}

		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ListEntries returns the user's entries newest first: entry date descending,
// then creation time descending for same-day entries.
func (s *Store) ListEntries(ctx context.Context, userID string) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

// importLockKey derives a per-user advisory lock key so concurrent imports
// for the same user serialize while other users proceed.
func importLockKey(userID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("ledger-import"))
	h.Write([]byte{0})
	h.Write([]byte(userID))

	return int64(h.Sum64())
}

type importTx struct {
	tx     *sql.Tx
	userID string
}

func (s *Store) BeginImport(ctx context.Context, userID string) (ledger.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(userID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, userID: userID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) ExistingVouchers(ctx context.Context, voucherIDs []string) (map[string]bool, error) {
	if len(voucherIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT voucher_id
		FROM ledger_entries
		WHERE user_id = $1 AND voucher_id = ANY($2)
	`

	rows, err := itx.tx.QueryContext(ctx, query, itx.userID, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("looking up vouchers: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning voucher: %w", err)
		}

		existing[v] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vouchers: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateEntries(ctx context.Context, entries []*ledger.Entry) error {
	for _, e := range entries {
		err := itx.tx.QueryRowContext(ctx, insertEntry,
			e.UserID, e.VoucherID, e.EntryDate, e.ProductName, e.Unit, e.UnitPrice,
			e.QuantityIn, e.QuantityOut, e.AmountIn, e.AmountOut, e.Note,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("restoring entry %s: %w", e.VoucherID, err)
		}
	}

	return nil
}
