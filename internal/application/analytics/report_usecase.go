package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
)

// DailyReport datos del cierre diario para el PDF.
type DailyReport struct {
	GeneratedAt  time.Time
	Summary      dto.DaySummaryDTO
	Chart        []dto.SalesChartPointDTO
	LowStock     []dto.IngredientDTO
	ActiveAlerts int
}

// ReportGenerator puerto de salida para renderizar el cierre (implementación con maroto).
type ReportGenerator interface {
	DailyReport(ctx context.Context, report *DailyReport) ([]byte, error)
}

// LowStockLister fuente de ingredientes en stock bajo.
type LowStockLister interface {
	ListLowStock(ctx context.Context) ([]dto.IngredientDTO, error)
}

// ActiveAlertCounter fuente del contador de alertas activas.
type ActiveAlertCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// ReportUseCase arma el reporte de cierre a partir de las mismas vistas del dashboard.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	lowStock  LowStockLister
	alerts    ActiveAlertCounter
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, lowStock LowStockLister, alerts ActiveAlertCounter, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, lowStock: lowStock, alerts: alerts, generator: generator}
}

// Build reúne los datos del cierre sin renderizar.
func (uc *ReportUseCase) Build(ctx context.Context) (*DailyReport, error) {
	summary, err := uc.dashboard.DaySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: resumen: %w", err)
	}
	chart, err := uc.dashboard.SalesChart(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: gráfico: %w", err)
	}
	low, err := uc.lowStock.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: stock bajo: %w", err)
	}
	active, err := uc.alerts.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: alertas: %w", err)
	}
	return &DailyReport{
		GeneratedAt:  uc.dashboard.now(),
		Summary:      summary,
		Chart:        chart,
		LowStock:     low,
		ActiveAlerts: active,
	}, nil
}

// DailyPDF devuelve el PDF y el nombre de archivo sugerido ("cierre-2026-03-01.pdf").
func (uc *ReportUseCase) DailyPDF(ctx context.Context) ([]byte, string, error) {
	report, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.DailyReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cierre-%s.pdf", report.Summary.Date), nil
}
