package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"shop-reconciliation/internal/domain"
)

// ReconciliationUseCase runs the ledger-vs-backend reconciliation pipeline for
// one shop and date range. Every invocation is a pure function of its inputs;
// nothing is shared across requests.
type ReconciliationUseCase struct {
	repo   ShopRepository
	parser LedgerSource
	logger *slog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo ShopRepository, parser LedgerSource, logger *slog.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationUseCase{repo: repo, parser: parser, logger: logger}
}

// ListShops exposes the picker options so the transport layer needs no direct
// repository access.
func (uc *ReconciliationUseCase) ListShops(ctx context.Context) ([]domain.ShopOption, error) {
	return uc.repo.ListShops(ctx)
}

// Reconcile performs the full pipeline: parse the upload, restrict it to the
// range, fetch the backend side, join on order id and shape the final table.
// The error taxonomy in internal/domain tells the caller which side of the
// comparison produced nothing.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, upload io.Reader, shopID string, rng domain.DateRange) (*domain.ReconciliationReport, error) {
	if upload == nil {
		return nil, domain.ErrNoFile
	}

	ledger, err := uc.parser.Parse(upload)
	if err != nil {
		return nil, err
	}

	filtered, err := FilterRange(ledger, rng)
	if err != nil {
		return nil, err
	}
	uc.logger.DebugContext(ctx, "ledger filtered",
		"uploaded_rows", len(ledger), "rows_in_range", len(filtered))

	authority, err := uc.repo.GetAuthorityRows(ctx, shopID, rng)
	if err != nil {
		return nil, fmt.Errorf("could not get authority rows: %w", err)
	}
	if len(authority) == 0 {
		return nil, domain.ErrAuthorityEmpty
	}

	shop, err := uc.repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	joined := uc.join(ctx, filtered, authority, shop)
	uc.logger.DebugContext(ctx, "ledger joined",
		"authority_rows", len(authority), "matched_rows", len(joined))

	return &domain.ReconciliationReport{
		Shop: shop,
		Rows: shapeReport(joined),
	}, nil
}

// FilterRange keeps the rows whose date lies inside the inclusive range,
// sorted ascending by date. Rows whose date never parsed (zero Date) are
// dropped before any comparison. The sort is stable, so rows sharing a date
// keep their upload order. Returns domain.ErrNoLedgerInRange when nothing
// survives.
func FilterRange(rows []domain.LedgerRow, rng domain.DateRange) ([]domain.LedgerRow, error) {
	var filtered []domain.LedgerRow
	for _, row := range rows {
		if row.Date.IsZero() || !rng.Contains(row.Date) {
			continue
		}
		filtered = append(filtered, row)
	}
	if len(filtered) == 0 {
		return nil, domain.ErrNoLedgerInRange
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})
	return filtered, nil
}

// join inner-joins the filtered ledger against the authority rows on order id
// and computes the signed differences at full precision. Ledger rows without
// an authority match are dropped; the ledger's date order survives because the
// lookup never re-sorts.
func (uc *ReconciliationUseCase) join(ctx context.Context, ledger []domain.LedgerRow, authority []domain.AuthorityRow, shop domain.ShopMeta) []domain.JoinedRow {
	byOrder := make(map[string]domain.AuthorityRow, len(authority))
	for _, a := range authority {
		if _, seen := byOrder[a.OrderID]; seen {
			// Last write wins, matching the backend's historical behavior.
			uc.logger.WarnContext(ctx, "duplicate authority order id, keeping the last row",
				"order_id", a.OrderID)
		}
		byOrder[a.OrderID] = a
	}

	joined := make([]domain.JoinedRow, 0, len(ledger))
	for _, l := range ledger {
		a, ok := byOrder[l.OrderID]
		if !ok {
			continue
		}
		joined = append(joined, domain.JoinedRow{
			Date:      l.Date,
			OrderID:   l.OrderID,
			ShopName:  shop.Name,
			ShopTaxID: shop.TaxID,

			Total:         l.Total,
			Amount:        a.Amount,
			Net:           l.Net,
			TaxableAmount: a.TaxableAmount,
			Tax:           l.Tax,
			TLTaxAmount:   a.TLTaxAmount,

			BillDifference: l.Total.Sub(a.Amount),
			TaxDifference:  l.Tax.Sub(a.TLTaxAmount),
			NetDifference:  l.Net.Sub(a.TaxableAmount),
		})
	}
	return joined
}

// numericColumns is the count of money columns in a report row.
const numericColumns = 9

// shapeReport turns joined rows into the rendered table: serial numbers 1..N,
// every money value rounded half-away-from-zero to two decimals, and a closing
// totals row summing the post-rounding values (rounded again). The totals row
// is emitted even for an empty join, with every sum at 0.00.
func shapeReport(joined []domain.JoinedRow) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(joined)+1)
	var totals [numericColumns]decimal.Decimal

	for i, j := range joined {
		vals := [numericColumns]decimal.Decimal{
			j.Total, j.Amount, j.Net, j.TaxableAmount, j.Tax, j.TLTaxAmount,
			j.BillDifference, j.TaxDifference, j.NetDifference,
		}
		for k := range vals {
			vals[k] = vals[k].Round(2)
			totals[k] = totals[k].Add(vals[k])
		}

		rows = append(rows, domain.ReportRow{
			SerialNumber:   strconv.Itoa(i + 1),
			Date:           j.Date.Format(domain.DateLayout),
			OrderID:        j.OrderID,
			ShopName:       j.ShopName,
			NsCIN:          j.ShopTaxID,
			Total:          vals[0].StringFixed(2),
			Amount:         vals[1].StringFixed(2),
			Net:            vals[2].StringFixed(2),
			TaxableAmount:  vals[3].StringFixed(2),
			Tax:            vals[4].StringFixed(2),
			TLTaxAmount:    vals[5].StringFixed(2),
			BillDifference: vals[6].StringFixed(2),
			TaxDifference:  vals[7].StringFixed(2),
			NetDifference:  vals[8].StringFixed(2),
		})
	}

	rows = append(rows, domain.ReportRow{
		SerialNumber:   domain.TotalsMarker,
		Total:          totals[0].Round(2).StringFixed(2),
		Amount:         totals[1].Round(2).StringFixed(2),
		Net:            totals[2].Round(2).StringFixed(2),
		TaxableAmount:  totals[3].Round(2).StringFixed(2),
		Tax:            totals[4].Round(2).StringFixed(2),
		TLTaxAmount:    totals[5].Round(2).StringFixed(2),
		BillDifference: totals[6].Round(2).StringFixed(2),
		TaxDifference:  totals[7].Round(2).StringFixed(2),
		NetDifference:  totals[8].Round(2).StringFixed(2),
	})
	return rows
}
