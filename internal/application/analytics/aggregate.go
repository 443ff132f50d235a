// Package analytics agrega ventas en KPIs del día y en el gráfico móvil de 7 días.
//
// Toda agregación recomputa desde cero sobre lecturas frescas del ledger;
// no hay contadores incrementales que puedan desviarse.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-ops/internal/application/dto"
	"github.com/jhoicas/panaderia-ops/internal/domain/calendar"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

// ChartDays tamaño de la ventana del gráfico de ventas (hoy incluido).
const ChartDays = 7

// BuildDaySummary suma las ventas con sold_at >= medianoche local de now.
// AvgTicket = Revenue / Count, o 0 si no hay ventas.
func BuildDaySummary(cal *calendar.Calendar, now time.Time, sales []*entity.Sale, closedCount int) dto.DaySummaryDTO {
	midnight := cal.StartOfDay(now)

	revenue := decimal.Zero
	count := 0
	for _, s := range sales {
		if s == nil || s.SoldAt.Before(midnight) {
			continue
		}
		revenue = revenue.Add(s.Total)
		count++
	}

	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(count)))
	}

	return dto.DaySummaryDTO{
		Date:        cal.DayKey(now),
		Revenue:     revenue,
		Count:       count,
		AvgTicket:   avg,
		ClosedCount: closedCount,
	}
}

// ChartStart primer instante incluido en el gráfico de days días que termina hoy.
func ChartStart(cal *calendar.Calendar, now time.Time, days int) time.Time {
	return cal.AddDays(now, -(days - 1))
}

// BuildSalesChart arma exactamente days buckets, del más antiguo a hoy, en cero.
// Cada venta cae en el bucket de su fecha calendario local; las que no corresponden
// a ningún bucket (fuera de ventana o con fecha futura por desfase de reloj) se descartan.
func BuildSalesChart(cal *calendar.Calendar, now time.Time, days int, sales []*entity.Sale) []dto.SalesChartPointDTO {
	if days <= 0 {
		return []dto.SalesChartPointDTO{}
	}

	points := make([]dto.SalesChartPointDTO, days)
	index := make(map[string]int, days)
	start := ChartStart(cal, now, days)
	for i := 0; i < days; i++ {
		day := cal.AddDays(start, i)
		key := cal.DayKey(day)
		points[i] = dto.SalesChartPointDTO{Date: key, Label: cal.DayLabel(day), Total: decimal.Zero}
		index[key] = i
	}

	for _, s := range sales {
		if s == nil {
			continue
		}
		i, ok := index[cal.DayKey(s.SoldAt)]
		if !ok {
			continue
		}
		points[i].Total = points[i].Total.Add(s.Total)
	}
	return points
}
