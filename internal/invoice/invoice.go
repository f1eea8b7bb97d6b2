package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingNumber is returned when a record without an invoice number is
// handed to the service. The number is the primary key; a record without it
// cannot be matched or stored.
var ErrMissingNumber = errors.New("invoice has no invoice number")

// Record is one extracted invoice. Fields other than InvoiceNumber are
// optional: extraction never fails a whole document over one field, it just
// leaves the field unset.
type Record struct {
	InvoiceNumber string
	VendorName    string
	ClientName    string
	InvoiceDate   *time.Time
	DueDate       *time.Time
	TotalAmount   *decimal.Decimal
	CreatedAt     time.Time
}
