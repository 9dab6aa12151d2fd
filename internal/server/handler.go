package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop-reconciliation/internal/domain"
	"shop-reconciliation/internal/usecase"
)

// Layout of the HTML date picker inputs (yyyy-mm-dd).
const pickerLayout = "2006-01-02"

// Handler serves the reconciliation form and the report page.
type Handler struct {
	uc     *usecase.ReconciliationUseCase
	logger *slog.Logger
}

func NewHandler(uc *usecase.ReconciliationUseCase, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// Index renders the shop picker form.
func (h *Handler) Index(c *gin.Context) {
	shops, err := h.uc.ListShops(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list shops failed", "error", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Message": "Could not load the shop list.",
		})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Shops": shops})
}

// Reconcile handles the form submission: shop, date range and the uploaded
// ledger. Every pipeline outcome is rendered as a page, never a crash.
func (h *Handler) Reconcile(c *gin.Context) {
	ctx := c.Request.Context()

	shops, err := h.uc.ListShops(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list shops failed", "error", err)
	}

	shopID := c.PostForm("shop_id")
	fromStr := c.PostForm("from_date_picker")
	toStr := c.PostForm("to_date_picker")
	h.logger.DebugContext(ctx, "form data",
		"shop_id", shopID, "from_date_picker", fromStr, "to_date_picker", toStr)

	rng, err := parseRange(fromStr, toStr)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Shops":   shops,
			"Message": "Please provide a valid date range.",
		})
		return
	}

	fileHeader, err := c.FormFile("source_file")
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Shops":   shops,
			"Message": messageFor(domain.ErrNoFile),
		})
		return
	}
	upload, err := fileHeader.Open()
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Shops":   shops,
			"Message": "The uploaded file could not be opened.",
		})
		return
	}
	defer upload.Close()

	report, err := h.uc.Reconcile(ctx, upload, shopID, rng)
	if err != nil {
		h.logger.WarnContext(ctx, "reconciliation did not produce a report", "error", err)
		c.HTML(statusFor(err), "index.html", gin.H{
			"Shops":   shops,
			"Message": messageFor(err),
		})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"Shop":    report.Shop,
		"Columns": domain.ReportColumns,
		"Rows":    report.Rows,
	})
}

func parseRange(fromStr, toStr string) (domain.DateRange, error) {
	from, err := time.Parse(pickerLayout, fromStr)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := time.Parse(pickerLayout, toStr)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{From: from, To: to}, nil
}

// messageFor maps the pipeline's error taxonomy onto the user-visible
// messages of the form page.
func messageFor(err error) string {
	var pe *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return "No CSV file uploaded."
	case errors.Is(err, domain.ErrNoLedgerInRange):
		return "No records found in the CSV file for the selected date range."
	case errors.Is(err, domain.ErrAuthorityEmpty):
		return "No records found for the given date range and shop."
	case errors.Is(err, domain.ErrShopNotFound):
		return "The selected shop could not be found."
	case errors.As(err, &pe):
		return "The uploaded file could not be read: " + pe.Reason + "."
	default:
		return "Something went wrong while building the report."
	}
}

func statusFor(err error) int {
	var pe *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNoFile),
		errors.Is(err, domain.ErrNoLedgerInRange),
		errors.Is(err, domain.ErrAuthorityEmpty),
		errors.Is(err, domain.ErrShopNotFound),
		errors.As(err, &pe):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
