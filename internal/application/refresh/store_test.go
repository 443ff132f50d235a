package refresh_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-ops/internal/application/refresh"
	"github.com/jhoicas/panaderia-ops/internal/domain"
)

var summaryKey = refresh.Key{Family: domain.FamilySales, View: "day_summary"}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func TestGet_LlamadasConcurrentesCompartenUnRecomputo(t *testing.T) {
	store := refresh.NewStore(nil)
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return 40, nil
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Dar tiempo a que todos se unan al vuelo antes de liberarlo.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 40, v)
	}
}

func TestGet_SoloInvalidacionNoCaducaPorTiempo(t *testing.T) {
	clock := newClock()
	store := refresh.NewStore(nil, refresh.WithClock(clock.Now))
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) { return int(calls.Add(1)), nil }

	v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clock.Advance(24 * time.Hour)
	v, err = store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "sin invalidación se sirve del cache")

	assert.Equal(t, 1, store.Invalidate(domain.FamilySales))
	v, err = store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestGet_PoliticaPeriodicaCaducaAlIntervalo(t *testing.T) {
	clock := newClock()
	store := refresh.NewStore(nil, refresh.WithClock(clock.Now))
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) { return int(calls.Add(1)), nil }
	policy := refresh.Every(30 * time.Second)

	_, _ = store.Get(context.Background(), summaryKey, policy, fetch)
	clock.Advance(29 * time.Second)
	v, _ := store.Get(context.Background(), summaryKey, policy, fetch)
	assert.Equal(t, 1, v)

	clock.Advance(time.Second)
	v, _ = store.Get(context.Background(), summaryKey, policy, fetch)
	assert.Equal(t, 2, v)
}

// Un recomputo iniciado antes de la invalidación nunca sobrescribe el resultado nuevo.
func TestGet_ResultadoObsoletoNoSeEscribe(t *testing.T) {
	store := refresh.NewStore(nil)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release // ignora la cancelación a propósito: simula una lectura lenta
			return "viejo", nil
		}
		return "nuevo", nil
	}

	first := make(chan any, 1)
	go func() {
		v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
		assert.NoError(t, err)
		first <- v
	}()

	<-started
	store.Invalidate(domain.FamilySales)

	v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", v)

	close(release)
	assert.Equal(t, "nuevo", <-first, "el lector original reintenta bajo la nueva generación")
	assert.Equal(t, "nuevo", store.State(summaryKey).Data)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_CancelaRecomputoEnCurso(t *testing.T) {
	store := refresh.NewStore(nil)
	var calls atomic.Int32
	started := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return 7, nil
	}

	done := make(chan any, 1)
	go func() {
		v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
		assert.NoError(t, err)
		done <- v
	}()

	<-started
	assert.True(t, store.State(summaryKey).IsLoading)
	store.Invalidate(domain.FamilySales)

	select {
	case v := <-done:
		assert.Equal(t, 7, v)
	case <-time.After(2 * time.Second):
		t.Fatal("Get no terminó tras la invalidación")
	}
	assert.Equal(t, uint64(1), store.Generation(summaryKey))
}

func TestInvalidate_SoloTocaLaFamiliaIndicada(t *testing.T) {
	store := refresh.NewStore(nil)
	alertsKey := refresh.Key{Family: domain.FamilyAlerts, View: "active_count"}
	ok := func(ctx context.Context) (any, error) { return 1, nil }

	_, _ = store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), ok)
	_, _ = store.Get(context.Background(), alertsKey, refresh.OnInvalidate(), ok)

	assert.Equal(t, 1, store.Invalidate(domain.FamilyAlerts))
	assert.Nil(t, store.State(alertsKey).Data)
	assert.Equal(t, 1, store.State(summaryKey).Data)
	assert.Equal(t, 0, store.Invalidate(domain.FamilyDiscounts))
	assert.Equal(t, 0, store.Invalidate())
}

func TestGet_ErrorQuedaComoEstadoYConservaElUltimoDato(t *testing.T) {
	clock := newClock()
	store := refresh.NewStore(nil, refresh.WithClock(clock.Now))
	boom := domain.ReadFailure(domain.FamilySales, "ListSince", errors.New("timeout"))
	fail := false
	fetch := func(ctx context.Context) (any, error) {
		if fail {
			return nil, boom
		}
		return "ok", nil
	}
	policy := refresh.Every(30 * time.Second)

	_, err := store.Get(context.Background(), summaryKey, policy, fetch)
	require.NoError(t, err)

	fail = true
	clock.Advance(31 * time.Second)
	_, err = store.Get(context.Background(), summaryKey, policy, fetch)
	require.ErrorIs(t, err, domain.ErrReadFailure)

	st := store.State(summaryKey)
	assert.ErrorIs(t, st.Err, domain.ErrReadFailure)
	assert.Equal(t, "ok", st.Data, "la presentación sigue mostrando el último dato válido")
	assert.False(t, st.IsLoading)

	// Dentro del intervalo el error se sirve del cache, sin reintentar contra el ledger.
	fail = false
	_, err = store.Get(context.Background(), summaryKey, policy, fetch)
	assert.ErrorIs(t, err, domain.ErrReadFailure)

	clock.Advance(30 * time.Second)
	v, err := store.Get(context.Background(), summaryKey, policy, fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.NoError(t, store.State(summaryKey).Err)
}

func TestGet_SoloInvalidacionReintentaTrasError(t *testing.T) {
	store := refresh.NewStore(nil)
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, domain.ReadFailure(domain.FamilyAlerts, "CountActive", errors.New("conn reset"))
		}
		return 3, nil
	}

	_, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.Error(t, err)

	v, err := store.Get(context.Background(), summaryKey, refresh.OnInvalidate(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

// El ctx del llamador corta su espera, pero el recomputo compartido termina y se cachea.
func TestGet_CancelacionDelLlamadorNoAbortaElRecomputo(t *testing.T) {
	store := refresh.NewStore(nil)
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		<-release
		return "listo", ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := store.Get(ctx, summaryKey, refresh.OnInvalidate(), fetch)
		errCh <- err
	}()

	require.Eventually(t, func() bool { return store.State(summaryKey).IsLoading }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return store.State(summaryKey).Data == "listo" }, time.Second, time.Millisecond)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "sales/day_summary", summaryKey.String())
	k := refresh.Key{Family: domain.FamilyCRMMessages, View: "by_customer", Params: "cli-9"}
	assert.Equal(t, "crm_messages/by_customer?cli-9", k.String())
}

func TestRefresh_RecomputaAunqueEsteVigente(t *testing.T) {
	store := refresh.NewStore(nil)
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) { return int(calls.Add(1)), nil }
	policy := refresh.Every(time.Hour)

	_, _ = store.Get(context.Background(), summaryKey, policy, fetch)
	v, err := store.Refresh(context.Background(), summaryKey, policy, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, _ = store.Get(context.Background(), summaryKey, policy, fetch)
	assert.Equal(t, 2, v, "Get sigue sirviendo el dato recién refrescado")
}

// Las claves por cliente que ya no tienen dato ni recomputo liberan su generación.
func TestInvalidate_LiberaGeneracionesSinUso(t *testing.T) {
	store := refresh.NewStore(nil)
	ok := func(ctx context.Context) (any, error) { return "hola", nil }

	for i := 0; i < 50; i++ {
		key := refresh.Key{Family: domain.FamilyCRMMessages, View: "messages", Params: fmt.Sprintf("cliente-%d", i)}
		_, _ = store.Get(context.Background(), key, refresh.OnInvalidate(), ok)
	}
	key := refresh.Key{Family: domain.FamilyCRMMessages, View: "messages", Params: "cliente-0"}

	assert.Equal(t, 50, store.Invalidate(domain.FamilyCRMMessages))
	assert.Equal(t, uint64(1), store.Generation(key), "con dato cacheado la generación avanza")
	assert.Equal(t, 0, store.Invalidate(domain.FamilyCRMMessages))
	assert.Zero(t, store.Generation(key))
	assert.Zero(t, store.Tracked())

	v, err := store.Get(context.Background(), key, refresh.OnInvalidate(), ok)
	require.NoError(t, err)
	assert.Equal(t, "hola", v)
}
