package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/panaderia-ops/internal/application/analytics"
	"github.com/jhoicas/panaderia-ops/internal/domain/calendar"
	"github.com/jhoicas/panaderia-ops/internal/domain/entity"
)

func bogota(t *testing.T) *calendar.Calendar {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return calendar.New(loc, language.Spanish)
}

func sale(total string, at time.Time) *entity.Sale {
	return &entity.Sale{ID: total + at.String(), Total: decimal.RequireFromString(total), SoldAt: at}
}

func TestBuildDaySummary_SumaYTicketPromedio(t *testing.T) {
	cal := bogota(t)
	loc := cal.Location()
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, loc)

	sales := []*entity.Sale{
		sale("10.00", time.Date(2026, 3, 2, 8, 0, 0, 0, loc)),
		sale("30.00", time.Date(2026, 3, 2, 12, 30, 0, 0, loc)),
		sale("99.00", time.Date(2026, 3, 1, 23, 59, 59, 0, loc)), // ayer: fuera
	}

	got := analytics.BuildDaySummary(cal, now, sales, 2)

	assert.Equal(t, "2026-03-02", got.Date)
	assert.True(t, got.Revenue.Equal(decimal.NewFromInt(40)), "revenue %s", got.Revenue)
	assert.Equal(t, 2, got.Count)
	assert.True(t, got.AvgTicket.Equal(decimal.NewFromInt(20)), "avg %s", got.AvgTicket)
	assert.Equal(t, 2, got.ClosedCount)
}

func TestBuildDaySummary_SinVentasTicketCero(t *testing.T) {
	cal := bogota(t)
	got := analytics.BuildDaySummary(cal, time.Date(2026, 3, 2, 6, 0, 0, 0, cal.Location()), nil, 0)

	assert.True(t, got.Revenue.IsZero())
	assert.Zero(t, got.Count)
	assert.True(t, got.AvgTicket.IsZero())
}

// La medianoche es local: 03:00 UTC del día 2 sigue siendo el día 1 en Bogotá.
func TestBuildDaySummary_MedianocheLocal(t *testing.T) {
	cal := bogota(t)
	now := time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC) // 23:30 del 1 en Bogotá

	got := analytics.BuildDaySummary(cal, now, []*entity.Sale{
		sale("5.00", time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)),
	}, 0)

	assert.Equal(t, "2026-03-01", got.Date)
	assert.Equal(t, 1, got.Count)
}

func TestBuildSalesChart_SieteBucketsDelMasAntiguoAHoy(t *testing.T) {
	cal := bogota(t)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, cal.Location())

	points := analytics.BuildSalesChart(cal, now, analytics.ChartDays, nil)

	require.Len(t, points, 7)
	wantDates := []string{"2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	for i, p := range points {
		assert.Equal(t, wantDates[i], p.Date)
		assert.True(t, p.Total.IsZero())
	}
	assert.Equal(t, "dom 1", points[5].Label)
	assert.Equal(t, "lun 2", points[6].Label)
}

func TestBuildSalesChart_CruzaCambioDeMesYDescartaFueraDeVentana(t *testing.T) {
	cal := bogota(t)
	loc := cal.Location()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, loc)

	sales := []*entity.Sale{
		sale("12.50", time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)), // 28 feb 22:00 local
		sale("7.50", time.Date(2026, 2, 28, 9, 0, 0, 0, loc)),
		sale("4.00", time.Date(2026, 3, 1, 0, 0, 0, 0, loc)),
		sale("100", time.Date(2026, 2, 23, 23, 0, 0, 0, loc)), // fuera de la ventana
		sale("50", time.Date(2026, 3, 3, 8, 0, 0, 0, loc)),    // futuro por desfase de reloj
		sale("1", time.Date(2026, 3, 2, 9, 59, 0, 0, loc)),
	}

	points := analytics.BuildSalesChart(cal, now, analytics.ChartDays, sales)

	require.Len(t, points, 7)
	totals := map[string]string{}
	for _, p := range points {
		totals[p.Date] = p.Total.String()
	}
	assert.Equal(t, "20", totals["2026-02-28"])
	assert.Equal(t, "4", totals["2026-03-01"])
	assert.Equal(t, "1", totals["2026-03-02"])
	assert.Equal(t, "0", totals["2026-02-24"])
}

func TestBuildSalesChart_Determinista(t *testing.T) {
	cal := bogota(t)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, cal.Location())
	sales := []*entity.Sale{
		sale("3.10", now.Add(-30*time.Hour)),
		sale("8.90", now.Add(-2*time.Hour)),
	}

	a := analytics.BuildSalesChart(cal, now, analytics.ChartDays, sales)
	b := analytics.BuildSalesChart(cal, now, analytics.ChartDays, sales)
	assert.Equal(t, a, b)
}

func TestBuildSalesChart_DiasNoPositivos(t *testing.T) {
	cal := bogota(t)
	assert.Empty(t, analytics.BuildSalesChart(cal, time.Now(), 0, nil))
}
