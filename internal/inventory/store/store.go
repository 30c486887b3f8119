package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectItemColumns = `
	id, user_id, name, quantity, unit, cost, threshold, created_at
`

func scanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	if err := s.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity,
		&item.Unit, &item.Cost, &item.Threshold, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &item, nil
}

// ApplyDelta is the reconciliation write. A single conditional upsert keyed
// by (user_id, name) makes the read-modify-write atomic: concurrent
// reconciliations for the same item serialize on the row instead of losing
// updates. Unit and cost are last-write-wins; the threshold is only set on
// first insert.
func (s *Store) ApplyDelta(ctx context.Context, userID, name, unit string, cost, delta decimal.Decimal) (*inventory.Item, error) {
	query := `
		INSERT INTO inventory_items (user_id, name, quantity, unit, cost, threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, name) DO UPDATE SET
			quantity = inventory_items.quantity + EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			cost = EXCLUDED.cost
		RETURNING ` + selectItemColumns

	item, err := scanItem(s.db.QueryRowContext(ctx, query,
		userID, name, delta, unit, cost, inventory.DefaultThreshold,
	))
	if err != nil {
		return nil, fmt.Errorf("applying quantity delta: %w", err)
	}

	return item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO inventory_items (user_id, name, quantity, unit, cost, threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.UserID, item.Name, item.Quantity, item.Unit, item.Cost, item.Threshold,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%q: %w", item.Name, inventory.ErrDuplicateName)
		}

		return fmt.Errorf("creating inventory item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, userID string, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND id = $2`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory item: %w", err)
	}

	return item, nil
}

func (s *Store) GetItemByName(ctx context.Context, userID, name string) (*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND name = $2`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory item by name: %w", err)
	}

	return item, nil
}

// UpdateItem writes metadata fields only; quantity changes go through
// ApplyDelta and the name is immutable.
func (s *Store) UpdateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		UPDATE inventory_items
		SET unit = $1, cost = $2, threshold = $3
		WHERE user_id = $4 AND id = $5
	`

	res, err := s.db.ExecContext(ctx, query, item.Unit, item.Cost, item.Threshold, item.UserID, item.ID)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return inventory.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return inventory.ErrNotFound
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, userID string) ([]*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory items: %w", err)
	}

	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
