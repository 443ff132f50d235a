package refresh_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
)

type chartPoint struct {
	Date  string
	Total int
}

func TestView_TipadaYParametrizada(t *testing.T) {
	store := refresh.NewStore(nil)
	view := refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "chart"}, refresh.OnInvalidate(),
		func(ctx context.Context) ([]chartPoint, error) {
			return []chartPoint{{Date: "2026-03-01", Total: 10}}, nil
		})

	pts, err := view.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.Equal(t, "2026-03-01", pts[0].Date)
	assert.True(t, view.Invalidate())

	byCustomer := func(id string) (string, error) {
		return refresh.Load(context.Background(), store,
			refresh.Key{Family: domain.FamilyCRMMessages, View: "by_customer", Params: id},
			refresh.OnInvalidate(),
			func(ctx context.Context) (string, error) { return "mensajes de " + id, nil })
	}
	a, err := byCustomer("a")
	require.NoError(t, err)
	b, err := byCustomer("b")
	require.NoError(t, err)
	assert.Equal(t, "mensajes de a", a)
	assert.Equal(t, "mensajes de b", b)
}

func TestView_ErrorDevuelveValorCero(t *testing.T) {
	store := refresh.NewStore(nil)
	view := refresh.NewView(store, refresh.Key{Family: domain.FamilyAlerts, View: "active_count"}, refresh.OnInvalidate(),
		func(ctx context.Context) (int, error) { return 0, errors.New("ledger caído") })

	n, err := view.Get(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Error(t, view.State().Err)
}

func TestRefresher_SoloVistasPeriodicas(t *testing.T) {
	store := refresh.NewStore(nil)
	var dash, badge, crm atomic.Int32

	v1 := refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "day_summary"}, refresh.Every(30*time.Second),
		func(ctx context.Context) (int, error) { return int(dash.Add(1)), nil })
	v2 := refresh.NewView(store, refresh.Key{Family: domain.FamilyAlerts, View: "active_count"}, refresh.Every(60*time.Second),
		func(ctx context.Context) (int, error) { return int(badge.Add(1)), nil })
	v3 := refresh.NewView(store, refresh.Key{Family: domain.FamilyDiscounts, View: "list"}, refresh.OnInvalidate(),
		func(ctx context.Context) (int, error) { return int(crm.Add(1)), nil })

	r := refresh.NewRefresher(nil, v1, v2, v3)
	assert.Len(t, r.Views(), 2)

	r.WarmAll(context.Background())
	r.WarmAll(context.Background())

	assert.Equal(t, int32(1), dash.Load(), "la segunda pasada aún no vence")
	assert.Equal(t, int32(1), badge.Load())
	assert.Zero(t, crm.Load())
}

func TestRefresher_RunTerminaConElContexto(t *testing.T) {
	store := refresh.NewStore(nil)
	v := refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "day_summary"}, refresh.Every(30*time.Second),
		func(ctx context.Context) (int, error) { return 1, nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresh.NewRefresher(nil, v).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return v.State().Data == 1 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no respetó la cancelación")
	}
}

func TestRefresher_CadenciaDentroDelIntervalo(t *testing.T) {
	clock := newClock()
	start := clock.Now()
	store := refresh.NewStore(nil, refresh.WithClock(clock.Now))

	var dashAt, badgeAt []time.Duration
	slowFetch := func(log *[]time.Duration) func(ctx context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			*log = append(*log, clock.Now().Sub(start).Truncate(time.Second))
			clock.Advance(50 * time.Millisecond)
			return len(*log), nil
		}
	}
	dash := refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "day_summary"}, refresh.Every(30*time.Second), slowFetch(&dashAt))
	badge := refresh.NewView(store, refresh.Key{Family: domain.FamilyAlerts, View: "active_count"}, refresh.Every(60*time.Second), slowFetch(&badgeAt))

	r := refresh.NewRefresher(nil, dash, badge).WithClock(clock.Now)
	assert.Equal(t, 30*time.Second, r.Tick())

	for tick := 0; tick <= 4; tick++ {
		clock.Set(start.Add(time.Duration(tick) * 30 * time.Second))
		r.WarmAll(context.Background())
	}

	s := time.Second
	assert.Equal(t, []time.Duration{0, 30 * s, 60 * s, 90 * s, 120 * s}, dashAt)
	assert.Equal(t, []time.Duration{0, 60 * s, 120 * s}, badgeAt)
	assert.Equal(t, 3, badge.State().Data)
}

func TestRefresher_TickEsDivisorComun(t *testing.T) {
	store := refresh.NewStore(nil)
	one := func(ctx context.Context) (int, error) { return 1, nil }
	r := refresh.NewRefresher(nil,
		refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "a"}, refresh.Every(45*time.Second), one),
		refresh.NewView(store, refresh.Key{Family: domain.FamilySales, View: "b"}, refresh.Every(30*time.Second), one),
	)
	assert.Equal(t, 15*time.Second, r.Tick())
}
