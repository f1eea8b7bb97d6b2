package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paytrace/internal/recon"
	"github.com/MrJamesThe3rd/paytrace/internal/report"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestAssemble(t *testing.T) {
	runID := uuid.New()
	paid := decimal.RequireFromString("1000.00")

	rep := report.Assemble(runID, []*recon.Result{
		{
			RunID:          runID,
			InvoiceNumber:  "INV-1",
			VendorName:     "Acme",
			ClaimedTotal:   decimal.RequireFromString("1000.00"),
			PaymentDates:   []time.Time{date("2023-08-05"), date("2023-08-12")},
			TransactionIDs: []string{"T1", "T2"},
			AmountPaid:     &paid,
			Status:         recon.StatusPaid,
			Verdict:        recon.VerdictVerified,
			Conclusion:     "The total amount paid 1000.00 meets or exceeds the invoice total 1000.00. This invoice is fully reconciled.",
		},
		{
			RunID:         runID,
			InvoiceNumber: "INV-2",
			VendorName:    "Globex",
			ClaimedTotal:  decimal.RequireFromString("250.00"),
			Status:        recon.StatusDue,
			Verdict:       recon.VerdictUnpaid,
			Conclusion:    "No matching payment was found in the bank records. This item is outstanding.",
		},
	})

	assert.Equal(t, runID.String(), rep.RunID)
	require.Len(t, rep.AuditReport, 2)

	// Result order is preserved.
	assert.Equal(t, "INV-1", rep.AuditReport[0].InvoiceNumber)
	assert.Equal(t, "INV-2", rep.AuditReport[1].InvoiceNumber)

	assert.Equal(t, []string{"2023-08-05", "2023-08-12"}, rep.AuditReport[0].PaymentDates)
	assert.Nil(t, rep.AuditReport[1].PaymentDates)
	assert.Nil(t, rep.AuditReport[1].AmountPaid)
}

func TestAssemble_JSONShape(t *testing.T) {
	runID := uuid.New()
	paid := decimal.RequireFromString("600.00")

	rep := report.Assemble(runID, []*recon.Result{
		{
			RunID:          runID,
			InvoiceNumber:  "INV-1",
			VendorName:     "Acme",
			ClaimedTotal:   decimal.RequireFromString("1000.00"),
			PaymentDates:   []time.Time{date("2023-08-05")},
			TransactionIDs: []string{"T1"},
			AmountPaid:     &paid,
			Status:         recon.StatusDue,
			Verdict:        recon.VerdictUnderpaid,
			Conclusion:     "The total payment of 600.00 does not cover the full invoice value 1000.00. A balance of 400.00 is still due.",
		},
	})

	raw, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, runID.String(), doc["run_id"])

	entries, ok := doc["audit_report"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	entry := entries[0].(map[string]any)
	assert.Equal(t, "INV-1", entry["invoice_number"])
	assert.Equal(t, "Acme", entry["vendor_name"])
	assert.Equal(t, []any{"2023-08-05"}, entry["payment_date"])
	assert.Equal(t, []any{"T1"}, entry["transaction_id"])
	assert.Equal(t, "DUE", entry["status"])
	assert.Equal(t, "UNDERPAID", entry["verdict"])

	// Monetary fields are bare JSON numbers, not quoted strings.
	assert.JSONEq(t, `1000`, string(mustField(t, raw, "total_amount")))
	assert.JSONEq(t, `600`, string(mustField(t, raw, "amount_paid")))
}

func TestAssemble_UnpaidEntrySerializesNulls(t *testing.T) {
	runID := uuid.New()

	rep := report.Assemble(runID, []*recon.Result{
		{
			RunID:         runID,
			InvoiceNumber: "INV-1",
			VendorName:    "Acme",
			ClaimedTotal:  decimal.RequireFromString("100.00"),
			Status:        recon.StatusDue,
			Verdict:       recon.VerdictUnpaid,
			Conclusion:    "No matching payment was found in the bank records. This item is outstanding.",
		},
	})

	raw, err := json.Marshal(rep)
	require.NoError(t, err)

	assert.Equal(t, "null", string(mustField(t, raw, "amount_paid")))
	assert.Equal(t, "null", string(mustField(t, raw, "payment_date")))
	assert.Equal(t, "null", string(mustField(t, raw, "transaction_id")))
}

func TestAssemble_EmptyRun(t *testing.T) {
	rep := report.Assemble(uuid.New(), nil)

	raw, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc struct {
		AuditReport []json.RawMessage `json:"audit_report"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotNil(t, doc.AuditReport)
	assert.Empty(t, doc.AuditReport)
}

// mustField pulls one raw field out of the first audit report entry.
func mustField(t *testing.T, raw []byte, key string) json.RawMessage {
	t.Helper()

	var doc struct {
		AuditReport []map[string]json.RawMessage `json:"audit_report"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotEmpty(t, doc.AuditReport)

	field, ok := doc.AuditReport[0][key]
	require.True(t, ok, "missing field %q", key)

	return field
}
