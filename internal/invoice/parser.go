package invoice

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Parser extracts labeled invoice fields from raw document text.
// Each label is matched independently; only the first occurrence counts,
// and a field that fails to parse is left unset rather than failing the
// whole record.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// field couples a label pattern with the assignment of its captured value.
// Adding a new label variant is just adding a row here.
type field struct {
	name    string
	pattern *regexp.Regexp
	assign  func(rec *Record, raw string)
}

// Date values may be digit-separated or month-name forms. The last
// alternative deliberately over-captures (e.g. "not-a-date") so that
// malformed values reach parseDate and get logged instead of vanishing.
const datePattern = `([A-Za-z]{3,9} \d{1,2}, \d{4}|\d{1,2} [A-Za-z]{3,9} \d{4}|[A-Za-z\d/-]+)`

var fields = []field{
	{
		name:    "invoice_number",
		pattern: regexp.MustCompile(`(?i)Invoice Number[:\s]+([A-Za-z0-9/-]+)`),
		assign:  func(rec *Record, raw string) { rec.InvoiceNumber = raw },
	},
	{
		name:    "vendor_name",
		pattern: regexp.MustCompile(`(?im)^Vendor[:\s]+(.+)$`),
		assign:  func(rec *Record, raw string) { rec.VendorName = raw },
	},
	{
		name:    "client_name",
		pattern: regexp.MustCompile(`(?im)^Client[:\s]+(.+)$`),
		assign:  func(rec *Record, raw string) { rec.ClientName = raw },
	},
	{
		name:    "invoice_date",
		pattern: regexp.MustCompile(`(?i)Invoice Date[:\s]+` + datePattern),
		assign:  func(rec *Record, raw string) { rec.InvoiceDate = parseDate("invoice_date", raw) },
	},
	{
		name:    "due_date",
		pattern: regexp.MustCompile(`(?i)Due Date[:\s]+` + datePattern),
		assign:  func(rec *Record, raw string) { rec.DueDate = parseDate("due_date", raw) },
	},
	{
		name:    "total_amount",
		pattern: regexp.MustCompile(`(?i)Total Amount[:\s]*[^\d\n]{0,4}([\d,]+\.\d{2})`),
		assign:  func(rec *Record, raw string) { rec.TotalAmount = parseAmount("total_amount", raw) },
	},
}

// Parse scans text for every known label and returns the assembled record.
// It always returns a record; absent or malformed fields are simply unset.
func (p *Parser) Parse(text string) *Record {
	rec := &Record{}

	for _, f := range fields {
		m := f.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		raw := strings.TrimSpace(m[1])
		if raw == "" {
			continue
		}

		f.assign(rec, raw)
	}

	return rec
}

// dateLayouts is the ordered list of accepted input formats. Day-month-year
// comes first, so "25-12-2023" is never read month-first.
var dateLayouts = []string{
	"2-1-2006",
	"1-2-2006",
	"2006-1-2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// parseDate normalizes a raw date string by trying each layout in order.
// Returns nil if none matches; the caller keeps going.
func parseDate(name, raw string) *time.Time {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return &t
		}
	}

	slog.Warn("could not parse date with known formats", "field", name, "value", raw)

	return nil
}

// parseAmount strips thousands separators and parses the value as a decimal.
func parseAmount(name, raw string) *decimal.Decimal {
	clean := strings.ReplaceAll(raw, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		slog.Warn("could not parse amount", "field", name, "value", raw)
		return nil
	}

	return &d
}
