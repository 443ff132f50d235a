package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/domain/calendar"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
	"github.com/jhoicas/panaderia-ops/internal/domain/repository"
)

// Claves de las vistas del dashboard (familia sales).
var (
	DaySummaryKey = refresh.Key{Family: domain.FamilySales, View: "day_summary"}
	SalesChartKey = refresh.Key{Family: domain.FamilySales, View: "sales_chart"}
)

// DashboardUseCase KPIs del día y gráfico de 7 días.
//
// Fuente de datos: SaleRepository y RegisterSessionRepository (solo lectura).
// Las lecturas públicas pasan por vistas cacheadas con política periódica.
type DashboardUseCase struct {
	saleRepo    repository.SaleRepository
	sessionRepo repository.RegisterSessionRepository
	cal         *calendar.Calendar
	now         func() time.Time

	summary *refresh.View[dto.DaySummaryDTO]
	chart   *refresh.View[[]dto.SalesChartPointDTO]
}

// NewDashboardUseCase construye el caso de uso y registra sus vistas en el store.
func NewDashboardUseCase(
	saleRepo repository.SaleRepository,
	sessionRepo repository.RegisterSessionRepository,
	cal *calendar.Calendar,
	store *refresh.Store,
	policy refresh.Policy,
) *DashboardUseCase {
	uc := &DashboardUseCase{
		saleRepo:    saleRepo,
		sessionRepo: sessionRepo,
		cal:         cal,
		now:         time.Now,
	}
	uc.summary = refresh.NewView(store, DaySummaryKey, policy, func(ctx context.Context) (dto.DaySummaryDTO, error) {
		return uc.ComputeDaySummary(ctx, uc.now())
	})
	uc.chart = refresh.NewView(store, SalesChartKey, policy, func(ctx context.Context) ([]dto.SalesChartPointDTO, error) {
		return uc.ComputeSalesChart(ctx, uc.now(), ChartDays)
	})
	return uc
}

// WithClock fija el reloj (tests, CLI con --at).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// DaySummary vista cacheada del resumen del día.
func (uc *DashboardUseCase) DaySummary(ctx context.Context) (dto.DaySummaryDTO, error) {
	return uc.summary.Get(ctx)
}

// SalesChart vista cacheada del gráfico de 7 días.
func (uc *DashboardUseCase) SalesChart(ctx context.Context) ([]dto.SalesChartPointDTO, error) {
	return uc.chart.Get(ctx)
}

// SummaryView y ChartView exponen las vistas al Refresher y a la capa HTTP.
func (uc *DashboardUseCase) SummaryView() *refresh.View[dto.DaySummaryDTO]      { return uc.summary }
func (uc *DashboardUseCase) ChartView() *refresh.View[[]dto.SalesChartPointDTO] { return uc.chart }

// ComputeDaySummary recomputa el resumen sin cache.
//
// Dos lecturas en paralelo:
//  1. ventas desde la medianoche local  → revenue, count, avgTicket
//  2. cajas cerradas desde medianoche    → closedCount
func (uc *DashboardUseCase) ComputeDaySummary(ctx context.Context, now time.Time) (dto.DaySummaryDTO, error) {
	midnight := uc.cal.StartOfDay(now)

	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type closedResult struct {
		n   int
		err error
	}

	salesCh := make(chan salesResult, 1)
	closedCh := make(chan closedResult, 1)

	go func() {
		sales, err := uc.saleRepo.ListSince(ctx, midnight)
		salesCh <- salesResult{sales, err}
	}()
	go func() {
		n, err := uc.sessionRepo.CountClosedSince(ctx, midnight)
		closedCh <- closedResult{n, err}
	}()

	sales := <-salesCh
	closed := <-closedCh

	if sales.err != nil {
		return dto.DaySummaryDTO{}, fmt.Errorf("dashboard: ventas de hoy: %w", sales.err)
	}
	if closed.err != nil {
		return dto.DaySummaryDTO{}, fmt.Errorf("dashboard: cajas cerradas: %w", closed.err)
	}

	return BuildDaySummary(uc.cal, now, sales.sales, closed.n), nil
}

// ComputeSalesChart recomputa el gráfico sin cache.
func (uc *DashboardUseCase) ComputeSalesChart(ctx context.Context, now time.Time, days int) ([]dto.SalesChartPointDTO, error) {
	if days <= 0 {
		return nil, fmt.Errorf("dashboard: días del gráfico: %w", domain.ErrInvalidInput)
	}
	sales, err := uc.saleRepo.ListSince(ctx, ChartStart(uc.cal, now, days))
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas del gráfico: %w", err)
	}
	return BuildSalesChart(uc.cal, now, days, sales), nil
}
