package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/application/reports"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
)

// ReportHandler handles the reporting endpoints (protected).
type ReportHandler struct {
	ledger    *reports.StockLedgerUseCase
	dashboard *reports.DashboardUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(ledger *reports.StockLedgerUseCase, dashboard *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{ledger: ledger, dashboard: dashboard}
}

// StockLedger godoc
// @Summary      Reconstruct the stock ledger of a product
// @Description  Replays the purchase and sale history against the current
// @Description  stock snapshot and returns dated movement rows with running
// @Description  balances. Rows can be per event or aggregated per day.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  true   "Product ID"
// @Param        from         query  string  false  "From date (YYYY-MM-DD, inclusive)"
// @Param        to           query  string  false  "To date (YYYY-MM-DD, inclusive)"
// @Param        granularity  query  string  false  "event (default) or day"
// @Param        limit        query  int     false  "Limit"   default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockLedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-ledger [get]
func (h *ReportHandler) StockLedger(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id required"})
	}
	var req dto.StockLedgerRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.ledger.Ledger(businessID, req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// StockLedgerPDF godoc
// @Summary      Download the stock ledger of a product as PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id   query  string  true   "Product ID"
// @Param        from         query  string  false  "From date (YYYY-MM-DD, inclusive)"
// @Param        to           query  string  false  "To date (YYYY-MM-DD, inclusive)"
// @Param        granularity  query  string  false  "event (default) or day"
// @Success      200  {string}  string  "PDF file"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-ledger/pdf [get]
func (h *ReportHandler) StockLedgerPDF(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id required"})
	}
	var req dto.StockLedgerRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	pdfBytes, filename, err := h.ledger.LedgerPDF(c.Context(), businessID, req)
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Dashboard godoc
// @Summary      Current-month sales figures, counts and low-stock alerts
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id required"})
	}
	out, err := h.dashboard.Dashboard(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
