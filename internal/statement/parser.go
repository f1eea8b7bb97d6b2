package statement

import (
	"bufio"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the fixed source format for statement lines (day-month-year).
const dateLayout = "02-01-2006"

// lineRe matches the six-field statement layout: date, transaction id,
// invoice number, free-text description, debit amount, trailing balance.
// The balance terminates the match and is discarded.
var lineRe = regexp.MustCompile(
	`^(\d{2}-\d{2}-\d{4})\s+` + // date
		`([\w-]+)\s+` + // transaction id
		`([\w/-]+)\s+` + // invoice number
		`(.+?)\s+` + // description
		`([\d,]+(?:\.\d{1,2})?)\s+` + // debit amount
		`([\d,]+(?:\.\d{1,2})?)$`, // balance
)

// Parser extracts transactions from raw bank-statement text, one line at a
// time. Headers, footers and other noise lines simply do not match the
// layout and are skipped; output order follows input order.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(text string) []Transaction {
	var txs []Transaction

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := time.Parse(dateLayout, m[1])
		if err != nil {
			slog.Warn("skipping line with unparsable date", "line", line, "error", err)
			continue
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(m[5], ",", ""))
		if err != nil {
			slog.Warn("skipping line with unparsable amount", "line", line, "error", err)
			continue
		}

		txs = append(txs, Transaction{
			TransactionID: m[2],
			InvoiceNumber: m[3],
			Description:   strings.TrimSpace(m[4]),
			Status:        StatusCleared,
			Date:          date,
			DebitAmount:   amount,
		})
	}

	return txs
}
