package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/application/analytics"
	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/internal/infrastructure/memory"
)

func newDashboard(t *testing.T, now time.Time) (*analytics.DashboardUseCase, *memory.Ledger, *refresh.Store) {
	t.Helper()
	cal := bogota(t)
	ledger := memory.NewLedger()
	store := refresh.NewStore(nil)
	uc := analytics.NewDashboardUseCase(ledger.Sales(), ledger.RegisterSessions(), cal, store, refresh.OnInvalidate()).
		WithClock(func() time.Time { return now })
	return uc, ledger, store
}

func TestDashboard_DaySummaryConCajasCerradas(t *testing.T) {
	loc := bogota(t).Location()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, loc)
	uc, ledger, _ := newDashboard(t, now)

	ledger.AddSale(decimal.RequireFromString("10.00"), now.Add(-3*time.Hour))
	ledger.AddSale(decimal.RequireFromString("30.00"), now.Add(-1*time.Hour))
	closedToday := now.Add(-30 * time.Minute)
	closedYesterday := now.Add(-26 * time.Hour)
	ledger.AddRegisterSession("pos-1", now.Add(-10*time.Hour), &closedToday)
	ledger.AddRegisterSession("pos-2", now.Add(-30*time.Hour), &closedYesterday)
	ledger.AddRegisterSession("pos-3", now.Add(-2*time.Hour), nil)

	got, err := uc.DaySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got.Count)
	assert.True(t, got.Revenue.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.AvgTicket.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, got.ClosedCount)
}

// Sin invalidación la vista se sirve del cache; tras invalidar sales se recomputa desde cero.
func TestDashboard_InvalidacionRecomputa(t *testing.T) {
	loc := bogota(t).Location()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, loc)
	uc, ledger, store := newDashboard(t, now)

	ledger.AddSale(decimal.NewFromInt(10), now.Add(-time.Hour))
	first, err := uc.DaySummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Count)

	ledger.AddSale(decimal.NewFromInt(5), now.Add(-time.Minute))
	cached, err := uc.DaySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Count)

	store.Invalidate(domain.FamilySales)
	fresh, err := uc.DaySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Count)
	assert.True(t, fresh.Revenue.Equal(decimal.NewFromInt(15)))
}

func TestDashboard_SalesChartSiempreSietePuntos(t *testing.T) {
	loc := bogota(t).Location()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, loc)
	uc, ledger, _ := newDashboard(t, now)
	ledger.AddSale(decimal.NewFromInt(8), now.AddDate(0, 0, -3))

	points, err := uc.SalesChart(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "2026-02-27", points[3].Date)
	assert.True(t, points[3].Total.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "2026-03-02", points[6].Date)
}

func TestDashboard_FalloDeLecturaSePropaga(t *testing.T) {
	loc := bogota(t).Location()
	uc, ledger, _ := newDashboard(t, time.Date(2026, 3, 2, 18, 0, 0, 0, loc))
	ledger.Fail(domain.FamilyRegisterSessions, errors.New("statement timeout"))

	_, err := uc.DaySummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReadFailure)
	assert.Contains(t, err.Error(), "cajas cerradas")

	state := uc.SummaryView().State()
	assert.ErrorIs(t, state.Err, domain.ErrReadFailure)
}

func TestDashboard_ComputeSalesChartRechazaDiasInvalidos(t *testing.T) {
	uc, _, _ := newDashboard(t, time.Now())
	_, err := uc.ComputeSalesChart(context.Background(), time.Now(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
