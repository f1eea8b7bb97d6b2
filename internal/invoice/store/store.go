package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveInvoice upserts a record by invoice number. Re-uploading the same
// invoice overwrites the extracted fields in place.
func (s *Store) SaveInvoice(ctx context.Context, rec *invoice.Record) error {
	query := `
		INSERT INTO invoices (invoice_number, vendor_name, client_name, invoice_date, due_date, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (invoice_number) DO UPDATE SET
			vendor_name = excluded.vendor_name,
			client_name = excluded.client_name,
			invoice_date = excluded.invoice_date,
			due_date = excluded.due_date,
			total_amount = excluded.total_amount
	`

	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, query,
		rec.InvoiceNumber,
		nullString(rec.VendorName),
		nullString(rec.ClientName),
		nullDate(rec.InvoiceDate),
		nullDate(rec.DueDate),
		nullAmount(rec.TotalAmount),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting invoice: %w", err)
	}

	rec.CreatedAt = now

	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Record, error) {
	query := `
		SELECT invoice_number, vendor_name, client_name, invoice_date, due_date, total_amount, created_at
		FROM invoices
		ORDER BY rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var recs []*invoice.Record

	for rows.Next() {
		rec, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return recs, nil
}

func scanInvoice(rows *sql.Rows) (*invoice.Record, error) {
	var rec invoice.Record

	var vendor, client, invDate, dueDate, total sql.NullString

	var createdAt string

	if err := rows.Scan(&rec.InvoiceNumber, &vendor, &client, &invDate, &dueDate, &total, &createdAt); err != nil {
		return nil, err
	}

	rec.VendorName = vendor.String
	rec.ClientName = client.String

	var err error

	if rec.InvoiceDate, err = scanDate(invDate); err != nil {
		return nil, err
	}

	if rec.DueDate, err = scanDate(dueDate); err != nil {
		return nil, err
	}

	if total.Valid {
		d, err := decimal.NewFromString(total.String)
		if err != nil {
			return nil, fmt.Errorf("parsing total_amount %q: %w", total.String, err)
		}

		rec.TotalAmount = &d
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}

	return &rec, nil
}

func scanDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s.String, err)
	}

	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: t.Format(time.DateOnly), Valid: true}
}

func nullAmount(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: d.String(), Valid: true}
}
