package recon

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

// Status is the payment state of an invoice after reconciliation.
type Status string

const (
	StatusPaid Status = "PAID"
	StatusDue  Status = "DUE"
)

// Verdict is the qualitative outcome of comparing an invoice's claimed total
// against its aggregated payments.
type Verdict string

const (
	VerdictVerified  Verdict = "VERIFIED"
	VerdictUnderpaid Verdict = "UNDERPAID"
	VerdictUnpaid    Verdict = "UNPAID"

	// Reserved states. The schema admits them but no rule currently emits
	// them: an overpayment classifies as VERIFIED under the >= rule.
	VerdictOverpaid Verdict = "OVERPAID"
	VerdictDisputed Verdict = "DISPUTED"
)

// ErrMissingTotal marks an invoice that has matched payments but no total
// amount to compare them against. That is a data error, not a verdict.
var ErrMissingTotal = errors.New("invoice has matched payments but no total amount")

// ErrPersistence wraps any failure of the run store so callers can tell a
// broken database apart from a bad reconciliation input.
var ErrPersistence = errors.New("persistence failure")

// Result is the outcome for one invoice in one run. PaymentDates and
// TransactionIDs keep the statement's source order; AmountPaid is nil when
// no payment matched.
type Result struct {
	RunID          uuid.UUID
	InvoiceNumber  string
	VendorName     string
	ClaimedTotal   decimal.Decimal
	PaymentDates   []time.Time
	TransactionIDs []string
	AmountPaid     *decimal.Decimal
	Status         Status
	Verdict        Verdict
	Conclusion     string
	ProcessedAt    time.Time
}

// Reconcile groups transactions by invoice number, aggregates the paid
// amounts with decimal arithmetic, and classifies every invoice. Exactly one
// result is produced per usable invoice, in input order; transactions that
// reference no known invoice are ignored.
func Reconcile(invoices []*invoice.Record, txs []statement.Transaction, runID uuid.UUID) ([]*Result, error) {
	known := make(map[string]struct{}, len(invoices))

	for _, inv := range invoices {
		if inv.InvoiceNumber != "" {
			known[inv.InvoiceNumber] = struct{}{}
		}
	}

	groups := make(map[string][]statement.Transaction)

	for _, tx := range txs {
		if tx.InvoiceNumber == "" {
			continue
		}

		if _, ok := known[tx.InvoiceNumber]; !ok {
			continue
		}

		groups[tx.InvoiceNumber] = append(groups[tx.InvoiceNumber], tx)
	}

	results := make([]*Result, 0, len(invoices))

	for _, inv := range invoices {
		if inv.InvoiceNumber == "" {
			continue
		}

		res, err := classify(inv, groups[inv.InvoiceNumber], runID)
		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}

	return results, nil
}

// classify applies the verdict rules in order, first match wins:
// no matches -> UNPAID, paid >= total -> VERIFIED, otherwise UNDERPAID.
func classify(inv *invoice.Record, matches []statement.Transaction, runID uuid.UUID) (*Result, error) {
	res := &Result{
		RunID:         runID,
		InvoiceNumber: inv.InvoiceNumber,
		VendorName:    inv.VendorName,
	}

	if inv.TotalAmount != nil {
		res.ClaimedTotal = *inv.TotalAmount
	}

	if len(matches) == 0 {
		res.Status = StatusDue
		res.Verdict = VerdictUnpaid
		res.Conclusion = "No matching payment was found in the bank records. This item is outstanding."

		return res, nil
	}

	if inv.TotalAmount == nil {
		return nil, fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, ErrMissingTotal)
	}

	paid := decimal.Zero
	for _, m := range matches {
		paid = paid.Add(m.DebitAmount)

		res.PaymentDates = append(res.PaymentDates, m.Date)
		res.TransactionIDs = append(res.TransactionIDs, m.TransactionID)
	}

	res.AmountPaid = &paid
	total := *inv.TotalAmount

	if paid.GreaterThanOrEqual(total) {
		res.Status = StatusPaid
		res.Verdict = VerdictVerified
		res.Conclusion = fmt.Sprintf(
			"The total amount paid %s meets or exceeds the invoice total %s. This invoice is fully reconciled.",
			paid.StringFixed(2), total.StringFixed(2))

		return res, nil
	}

	balance := total.Sub(paid)

	res.Status = StatusDue
	res.Verdict = VerdictUnderpaid
	res.Conclusion = fmt.Sprintf(
		"The total payment of %s does not cover the full invoice value %s. A balance of %s is still due.",
		paid.StringFixed(2), total.StringFixed(2), balance.StringFixed(2))

	return res, nil
}
