package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCleared is the only state bank lines arrive in; the statement is a
// record of settled movements.
const StatusCleared = "Cleared"

// Transaction is one debit line extracted from a bank statement.
type Transaction struct {
	TransactionID string
	InvoiceNumber string
	Description   string
	Status        string
	Date          time.Time
	DebitAmount   decimal.Decimal
}
