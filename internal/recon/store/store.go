package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/recon"
)

// listSeparator joins payment dates and transaction ids into single columns.
// Neither ISO dates nor transaction ids may contain a comma.
const listSeparator = ","

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveRun persists all results of a run inside one database transaction.
// Each row is upserted by (run_id, invoice_number): re-saving a run
// overwrites in place instead of duplicating. ProcessedAt is stamped here,
// at persistence time, on every result.
func (s *Store) SaveRun(ctx context.Context, results []*recon.Result) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning run save: %v", recon.ErrPersistence, err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO reconciliation_results (
			run_id, invoice_number, vendor_name, claimed_total,
			payment_dates, transaction_ids, amount_paid,
			status, verdict, conclusion, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, invoice_number) DO UPDATE SET
			vendor_name = excluded.vendor_name,
			claimed_total = excluded.claimed_total,
			payment_dates = excluded.payment_dates,
			transaction_ids = excluded.transaction_ids,
			amount_paid = excluded.amount_paid,
			status = excluded.status,
			verdict = excluded.verdict,
			conclusion = excluded.conclusion,
			processed_at = excluded.processed_at
	`

	now := time.Now().UTC()

	for _, res := range results {
		var amountPaid sql.NullString
		if res.AmountPaid != nil {
			amountPaid = sql.NullString{String: res.AmountPaid.String(), Valid: true}
		}

		_, err := dbTx.ExecContext(ctx, query,
			res.RunID.String(),
			res.InvoiceNumber,
			res.VendorName,
			res.ClaimedTotal.String(),
			joinDates(res.PaymentDates),
			joinIDs(res.TransactionIDs),
			amountPaid,
			string(res.Status),
			string(res.Verdict),
			res.Conclusion,
			now.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("%w: upserting result for invoice %s: %v", recon.ErrPersistence, res.InvoiceNumber, err)
		}

		res.ProcessedAt = now
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("%w: committing run save: %v", recon.ErrPersistence, err)
	}

	return nil
}

func (s *Store) ListRunIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT run_id FROM reconciliation_results ORDER BY rowid ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing run ids: %v", recon.ErrPersistence, err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: scanning run id: %v", recon.ErrPersistence, err)
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing run id %q: %v", recon.ErrPersistence, raw, err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating run ids: %v", recon.ErrPersistence, err)
	}

	return ids, nil
}

// ListResults returns a run's results in insertion order. Upserts keep the
// original rowid, so the order survives re-saves. An unknown run id yields
// an empty slice.
func (s *Store) ListResults(ctx context.Context, runID uuid.UUID) ([]*recon.Result, error) {
	query := `
		SELECT run_id, invoice_number, vendor_name, claimed_total,
			payment_dates, transaction_ids, amount_paid,
			status, verdict, conclusion, processed_at
		FROM reconciliation_results
		WHERE run_id = ?
		ORDER BY rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query, runID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: listing results: %v", recon.ErrPersistence, err)
	}
	defer rows.Close()

	var results []*recon.Result

	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", recon.ErrPersistence, err)
		}

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating result rows: %v", recon.ErrPersistence, err)
	}

	return results, nil
}

func scanResult(rows *sql.Rows) (*recon.Result, error) {
	var res recon.Result

	var runID, claimedTotal, processedAt string

	var paymentDates, transactionIDs, amountPaid sql.NullString

	if err := rows.Scan(
		&runID, &res.InvoiceNumber, &res.VendorName, &claimedTotal,
		&paymentDates, &transactionIDs, &amountPaid,
		&res.Status, &res.Verdict, &res.Conclusion, &processedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning result: %v", err)
	}

	var err error

	if res.RunID, err = uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("parsing run id %q: %v", runID, err)
	}

	if res.ClaimedTotal, err = decimal.NewFromString(claimedTotal); err != nil {
		return nil, fmt.Errorf("parsing claimed_total %q: %v", claimedTotal, err)
	}

	if amountPaid.Valid {
		d, err := decimal.NewFromString(amountPaid.String)
		if err != nil {
			return nil, fmt.Errorf("parsing amount_paid %q: %v", amountPaid.String, err)
		}

		res.AmountPaid = &d
	}

	if res.PaymentDates, err = splitDates(paymentDates); err != nil {
		return nil, err
	}

	if transactionIDs.Valid {
		res.TransactionIDs = strings.Split(transactionIDs.String, listSeparator)
	}

	if res.ProcessedAt, err = time.Parse(time.RFC3339, processedAt); err != nil {
		return nil, fmt.Errorf("parsing processed_at %q: %v", processedAt, err)
	}

	return &res, nil
}

func joinDates(dates []time.Time) sql.NullString {
	if dates == nil {
		return sql.NullString{}
	}

	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format(time.DateOnly)
	}

	return sql.NullString{String: strings.Join(parts, listSeparator), Valid: true}
}

func joinIDs(ids []string) sql.NullString {
	if ids == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: strings.Join(ids, listSeparator), Valid: true}
}

func splitDates(s sql.NullString) ([]time.Time, error) {
	if !s.Valid {
		return nil, nil
	}

	parts := strings.Split(s.String, listSeparator)

	dates := make([]time.Time, len(parts))

	for i, p := range parts {
		d, err := time.Parse(time.DateOnly, p)
		if err != nil {
			return nil, fmt.Errorf("parsing payment date %q: %v", p, err)
		}

		dates[i] = d
	}

	return dates, nil
}
