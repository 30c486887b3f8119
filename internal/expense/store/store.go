package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *expense.Entry) error {
	query := `
		INSERT INTO expense_entries (user_id, voucher_id, entry_date, description, total_amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID, e.VoucherID, e.EntryDate, e.Description, e.TotalAmount, e.Category,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, userID string) ([]*expense.Entry, error) {
	query := `
		SELECT id, user_id, voucher_id, entry_date, description, total_amount, category, created_at
		FROM expense_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing expense entries: %w", err)
	}
	defer rows.Close()

	var entries []*expense.Entry

	for rows.Next() {
		var e expense.Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.VoucherID, &e.EntryDate,
			&e.Description, &e.TotalAmount, &e.Category, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expense entry: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense entries: %w", err)
	}

	return entries, nil
}
