// Package report turns reconciliation results into the audit-report
// structure consumed by the reporting and notification collaborators.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/recon"
)

func init() {
	// Report consumers expect bare JSON numbers for monetary fields,
	// not shopspring's default quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Entry is one invoice's line in the audit report. Nil slices and pointers
// serialize as JSON null; the core never carries display sentinels.
type Entry struct {
	InvoiceNumber  string           `json:"invoice_number"`
	VendorName     string           `json:"vendor_name"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	PaymentDates   []string         `json:"payment_date"`
	TransactionIDs []string         `json:"transaction_id"`
	AmountPaid     *decimal.Decimal `json:"amount_paid"`
	Status         recon.Status     `json:"status"`
	Verdict        recon.Verdict    `json:"verdict"`
	Conclusion     string           `json:"conclusion"`
}

type Report struct {
	RunID       string  `json:"run_id"`
	AuditReport []Entry `json:"audit_report"`
}

// Assemble builds the report view of a run, preserving result order.
func Assemble(runID uuid.UUID, results []*recon.Result) *Report {
	entries := make([]Entry, 0, len(results))

	for _, res := range results {
		entry := Entry{
			InvoiceNumber:  res.InvoiceNumber,
			VendorName:     res.VendorName,
			TotalAmount:    res.ClaimedTotal,
			TransactionIDs: res.TransactionIDs,
			AmountPaid:     res.AmountPaid,
			Status:         res.Status,
			Verdict:        res.Verdict,
			Conclusion:     res.Conclusion,
		}

		if res.PaymentDates != nil {
			entry.PaymentDates = make([]string, len(res.PaymentDates))
			for i, d := range res.PaymentDates {
				entry.PaymentDates[i] = d.Format(time.DateOnly)
			}
		}

		entries = append(entries, entry)
	}

	return &Report{
		RunID:       runID.String(),
		AuditReport: entries,
	}
}
