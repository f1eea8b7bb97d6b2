package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// New opens the SQLite database at path and applies the schema.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory:
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS invoices (
		invoice_number TEXT PRIMARY KEY,
		vendor_name TEXT,
		client_name TEXT,
		invoice_date TEXT,
		due_date TEXT,
		total_amount TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bank_transactions (
		transaction_id TEXT PRIMARY KEY,
		invoice_number TEXT,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'Cleared',
		transaction_date TEXT NOT NULL,
		debit_amount TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reconciliation_results (
		run_id TEXT NOT NULL,
		invoice_number TEXT NOT NULL,
		vendor_name TEXT NOT NULL,
		claimed_total TEXT NOT NULL,
		payment_dates TEXT,
		transaction_ids TEXT,
		amount_paid TEXT,
		status TEXT NOT NULL CHECK (status IN ('PAID', 'DUE')),
		verdict TEXT NOT NULL CHECK (verdict IN ('VERIFIED', 'UNDERPAID', 'OVERPAID', 'UNPAID', 'DISPUTED')),
		conclusion TEXT NOT NULL,
		processed_at TEXT NOT NULL,
		PRIMARY KEY (run_id, invoice_number)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	return nil
}
