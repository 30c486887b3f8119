package database

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema. Statements are idempotent so running them on
// every boot is safe.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			voucher_id TEXT NOT NULL,
			entry_date DATE NOT NULL,
			product_name TEXT NOT NULL,
			unit TEXT NOT NULL,
			unit_price NUMERIC NOT NULL,
			quantity_in NUMERIC NOT NULL DEFAULT 0,
			quantity_out NUMERIC NOT NULL DEFAULT 0,
			amount_in NUMERIC NOT NULL DEFAULT 0,
			amount_out NUMERIC NOT NULL DEFAULT 0,
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, voucher_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_user_date
			ON ledger_entries (user_id, entry_date DESC)`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity NUMERIC NOT NULL DEFAULT 0,
			unit TEXT NOT NULL,
			cost NUMERIC NOT NULL DEFAULT 0,
			threshold NUMERIC NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS expense_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			voucher_id TEXT NOT NULL,
			entry_date DATE NOT NULL,
			description TEXT NOT NULL,
			total_amount NUMERIC NOT NULL,
			category TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, voucher_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expense_entries_user_date
			ON expense_entries (user_id, entry_date DESC)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}

	return nil
}
