package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JoinedRow pairs a range-filtered ledger row with its authority match and
// carries the signed differences (ledger minus authority) at full precision.
// Rounding happens later, during report shaping.
type JoinedRow struct {
	Date      time.Time
	OrderID   string
	ShopName  string
	ShopTaxID string

	Total         decimal.Decimal
	Amount        decimal.Decimal
	Net           decimal.Decimal
	TaxableAmount decimal.Decimal
	Tax           decimal.Decimal
	TLTaxAmount   decimal.Decimal

	BillDifference decimal.Decimal
	TaxDifference  decimal.Decimal
	NetDifference  decimal.Decimal
}

// TotalsMarker is the SerialNumber of the closing totals row.
const TotalsMarker = "Total"

// ReportRow is one rendered line of the difference report. Every value is a
// final presentation string: money fixed to two decimals, absent values "".
// The last row of a report is always a totals row whose SerialNumber is
// TotalsMarker and whose non-numeric columns are empty.
type ReportRow struct {
	SerialNumber   string
	Date           string
	OrderID        string
	ShopName       string
	NsCIN          string
	Total          string
	Amount         string
	Net            string
	TaxableAmount  string
	Tax            string
	TLTaxAmount    string
	BillDifference string
	TaxDifference  string
	NetDifference  string
}

// ReportColumns is the column order of the rendered table.
var ReportColumns = []string{
	"SerialNumber",
	"date",
	"order_id",
	"shop_name",
	"ns_cin",
	"total",
	"amount",
	"net",
	"taxable_amount",
	"tax",
	"tl_tax_amount",
	"Bill_Difference",
	"Tax_Difference",
	"Net_Difference",
}

// ReconciliationReport is the final output of one reconciliation request.
type ReconciliationReport struct {
	Shop ShopMeta
	// Rows holds the data rows in ascending date order, closed by the totals row.
	Rows []ReportRow
}
