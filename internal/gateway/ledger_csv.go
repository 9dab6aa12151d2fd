package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shop-reconciliation/internal/domain"
)

// Columns a ledger export must carry to be reconcilable.
var requiredColumns = []string{"date", "order_id", "total", "tax", "net"}

// Day-first layouts accepted for the ledger date column.
var ledgerDateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
}

// LedgerParser reads an uploaded point-of-sale CSV export into typed rows.
type LedgerParser struct{}

// NewLedgerParser creates a new parser instance.
func NewLedgerParser() *LedgerParser {
	return &LedgerParser{}
}

// Parse decodes the upload into ledger rows. Columns are located by header
// name, so extra columns and arbitrary column order are fine. A date that does
// not parse day-first leaves a zero Date on the row; range filtering drops it
// later. A money value that does not parse fails the whole upload, since that
// means the export itself is damaged.
func (p *LedgerParser) Parse(r io.Reader) ([]domain.LedgerRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &domain.ParseError{Reason: "source is not readable as CSV", Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &domain.ParseError{Reason: fmt.Sprintf("missing required column %q", name)}
		}
	}

	var rows []domain.LedgerRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Reason: "malformed CSV record", Err: err}
		}

		total, err := parseMoney("total", record[cols["total"]])
		if err != nil {
			return nil, err
		}
		tax, err := parseMoney("tax", record[cols["tax"]])
		if err != nil {
			return nil, err
		}
		net, err := parseMoney("net", record[cols["net"]])
		if err != nil {
			return nil, err
		}

		rows = append(rows, domain.LedgerRow{
			Date:    parseDayFirst(record[cols["date"]]),
			OrderID: strings.TrimSpace(record[cols["order_id"]]),
			Total:   total,
			Tax:     tax,
			Net:     net,
		})
	}
	return rows, nil
}

func parseMoney(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, &domain.ParseError{
			Reason: fmt.Sprintf("could not parse %s value %q", column, value),
			Err:    err,
		}
	}
	return d, nil
}

// parseDayFirst returns the zero time when no day-first layout matches.
func parseDayFirst(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
