package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveTransactions inserts the batch inside one database transaction.
// A transaction id already present in the table is ignored, so re-uploading
// the same statement is harmless.
func (s *Store) SaveTransactions(ctx context.Context, txs []statement.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT OR IGNORE INTO bank_transactions (transaction_id, invoice_number, description, status, transaction_date, debit_amount)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, tx := range txs {
		var invoiceNumber sql.NullString
		if tx.InvoiceNumber != "" {
			invoiceNumber = sql.NullString{String: tx.InvoiceNumber, Valid: true}
		}

		var description sql.NullString
		if tx.Description != "" {
			description = sql.NullString{String: tx.Description, Valid: true}
		}

		_, err := dbTx.ExecContext(ctx, query,
			tx.TransactionID,
			invoiceNumber,
			description,
			tx.Status,
			tx.Date.Format(time.DateOnly),
			tx.DebitAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", tx.TransactionID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transactions: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]statement.Transaction, error) {
	query := `
		SELECT transaction_id, invoice_number, description, status, transaction_date, debit_amount
		FROM bank_transactions
		ORDER BY rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []statement.Transaction

	for rows.Next() {
		var tx statement.Transaction

		var invoiceNumber, description sql.NullString

		var dateStr, amountStr string

		if err := rows.Scan(&tx.TransactionID, &invoiceNumber, &description, &tx.Status, &dateStr, &amountStr); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.InvoiceNumber = invoiceNumber.String
		tx.Description = description.String

		if tx.Date, err = time.Parse(time.DateOnly, dateStr); err != nil {
			return nil, fmt.Errorf("parsing transaction_date %q: %w", dateStr, err)
		}

		if tx.DebitAmount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("parsing debit_amount %q: %w", amountStr, err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
