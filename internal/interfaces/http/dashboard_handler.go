package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/panaderia-ops/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero de ventas del día.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetSummary KPIs del día local: ingresos, transacciones, ticket promedio y cajas cerradas.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.DaySummary(c.Context())
	return writeView(c, summary, err, h.uc.SummaryView().State())
}

// GetSalesChart ventas de los últimos 7 días, un punto por día (días sin ventas en 0).
// GET /api/dashboard/sales-chart
func (h *DashboardHandler) GetSalesChart(c *fiber.Ctx) error {
	points, err := h.uc.SalesChart(c.Context())
	return writeView(c, points, err, h.uc.ChartView().State())
}

// GetDailyReport PDF de cierre del día.
// GET /api/dashboard/report.pdf
func (h *DashboardHandler) GetDailyReport(c *fiber.Ctx) error {
	pdf, filename, err := h.report.DailyPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
