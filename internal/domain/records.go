package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-first date format shared by the ledger upload and the
// reports collection (dd-mm-yyyy).
const DateLayout = "02-01-2006"

// LedgerRow represents one line of the merchant's point-of-sale CSV export.
// A zero Date means the source value did not parse as a day-first date; such
// rows are dropped during range filtering and never reach the join.
type LedgerRow struct {
	Date    time.Time
	OrderID string
	Total   decimal.Decimal
	Tax     decimal.Decimal
	Net     decimal.Decimal
}

// AuthorityRow represents one backend-of-record transaction from the reports
// collection. Dates stay in the dd-mm-yyyy string form the collection stores.
type AuthorityRow struct {
	Date          string
	OrderID       string
	Amount        decimal.Decimal
	TLTaxAmount   decimal.Decimal
	TaxableAmount decimal.Decimal
}

// DateRange is an inclusive calendar date range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d lies inside the range, both ends inclusive.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// FormattedBounds returns the endpoints as dd-mm-yyyy strings, the form the
// reports collection expects in its date filter.
func (r DateRange) FormattedBounds() (from, to string) {
	return r.From.Format(DateLayout), r.To.Format(DateLayout)
}

// ShopMeta carries the display name and tax id attached to every report row.
type ShopMeta struct {
	Name  string
	TaxID string
}

// ShopOption is one entry of the shop picker.
type ShopOption struct {
	ID    string
	Label string
}
