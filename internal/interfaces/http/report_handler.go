package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
)

// ReportHandler expone los reportes en JSON y su exportación a PDF, XLSX o markdown.
type ReportHandler struct {
	ledger    *inventory.LedgerUseCase
	reports   *report.ReportUseCase
	threshold int64
}

// NewReportHandler construye el handler. threshold es el umbral de stock bajo por defecto.
func NewReportHandler(ledger *inventory.LedgerUseCase, reports *report.ReportUseCase, threshold int64) *ReportHandler {
	return &ReportHandler{ledger: ledger, reports: reports, threshold: threshold}
}

// Summary godoc
// @Summary      Resumen de stock
// @Description  Total de productos, total de unidades y subtotales por categoría con su participación (%).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	s, err := h.ledger.StockSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStockSummaryResponse(s))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (cantidad <= umbral)"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := h.queryThreshold(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	list, err := h.ledger.LowStock(c.Context(), *threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToProductResponses(list)))
}

// InStock godoc
// @Summary      Productos con existencias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/reports/in-stock [get]
func (h *ReportHandler) InStock(c *fiber.Ctx) error {
	list, err := h.ledger.InStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToProductResponses(list)))
}

// Activity godoc
// @Summary      Entradas y salidas por producto
// @Description  Sin since se usan los últimos 12 meses.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        since  query  string  false  "Desde (YYYY-MM-DD)"
// @Success      200  {object}  dto.ListResponse[dto.ProductActivityResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/activity [get]
func (h *ReportHandler) Activity(c *fiber.Ctx) error {
	since, err := queryDate(c, "since")
	if err != nil {
		return badRequest(c, "since debe tener formato YYYY-MM-DD")
	}
	start := h.ledger.TrailingYearStart()
	if since != nil {
		start = *since
	}
	list, err := h.ledger.Activity(c.Context(), start)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToActivityResponses(list)))
}

// Export godoc
// @Summary      Exportar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/markdown
// @Param        kind       path   string  true   "summary | low-stock | in-stock | activity"
// @Param        format     query  string  false  "pdf (por defecto) | xlsx | md"
// @Param        threshold  query  int     false  "Umbral para low-stock"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Params("kind"))
	if err != nil {
		return writeError(c, err)
	}
	format, err := report.ParseFormat(c.Query("format", string(report.FormatPDF)))
	if err != nil {
		return writeError(c, err)
	}
	threshold, err := h.queryThreshold(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, filename, err := h.reports.Export(c.Context(), kind, format, report.Options{Threshold: threshold})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(out)
}

func (h *ReportHandler) queryThreshold(c *fiber.Ctx) (*int64, error) {
	threshold := h.threshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("threshold debe ser un entero >= 0")
		}
		threshold = n
	}
	return &threshold, nil
}
