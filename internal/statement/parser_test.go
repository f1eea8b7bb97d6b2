package statement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

const sampleStatement = `HDFC BANK LTD
Account Statement for 01-08-2023 to 31-08-2023

Date Transaction ID Invoice No Description Debit Balance
05-08-2023 TXN001 INV-1 Payment to Acme Supplies 600.00 9,400.00
12-08-2023 TXN002 INV-1 Second instalment Acme 400.00 9,000.00
19-08-2023 TXN003 INV-2 Office rent August 25,000.00 84,000.00

*** End of statement ***
`

func TestParser_Parse(t *testing.T) {
	txs := statement.NewParser().Parse(sampleStatement)

	require.Len(t, txs, 3)

	first := txs[0]
	assert.Equal(t, "TXN001", first.TransactionID)
	assert.Equal(t, "INV-1", first.InvoiceNumber)
	assert.Equal(t, "Payment to Acme Supplies", first.Description)
	assert.Equal(t, statement.StatusCleared, first.Status)
	assert.Equal(t, "2023-08-05", first.Date.Format(time.DateOnly))
	assert.True(t, first.DebitAmount.Equal(decimal.RequireFromString("600.00")))

	// Thousands separators are stripped from amounts.
	assert.True(t, txs[2].DebitAmount.Equal(decimal.RequireFromString("25000.00")),
		"got %s", txs[2].DebitAmount)
}

func TestParser_Parse_PreservesInputOrder(t *testing.T) {
	txs := statement.NewParser().Parse(sampleStatement)

	require.Len(t, txs, 3)
	assert.Equal(t, []string{"TXN001", "TXN002", "TXN003"},
		[]string{txs[0].TransactionID, txs[1].TransactionID, txs[2].TransactionID})
}

func TestParser_Parse_SkipsNoiseLines(t *testing.T) {
	// Headers, footers and blank lines never match the layout.
	text := "Some header\n\nTotals: 123\n05-08-2023 TXN9 INV-9 Payment 100 900\n"

	txs := statement.NewParser().Parse(text)

	require.Len(t, txs, 1)
	assert.Equal(t, "TXN9", txs[0].TransactionID)
}

func TestParser_Parse_IntegerAmounts(t *testing.T) {
	// Amounts without a decimal part are valid.
	txs := statement.NewParser().Parse("05-08-2023 TXN1 INV-1 Payment 944,000 56,000\n")

	require.Len(t, txs, 1)
	assert.True(t, txs[0].DebitAmount.Equal(decimal.NewFromInt(944000)))
}

func TestParser_Parse_SkipsInvalidDate(t *testing.T) {
	// 45-13-2023 matches the digit layout but is no real date.
	txs := statement.NewParser().Parse("45-13-2023 TXN1 INV-1 Payment 100.00 900.00\n")

	assert.Empty(t, txs)
}

func TestParser_Parse_Empty(t *testing.T) {
	assert.Empty(t, statement.NewParser().Parse(""))
}
