// Package refresh mantiene las vistas derivadas (resumen del día, gráfico, badges)
// coherentes con el ledger bajo escrituras concurrentes de varios puntos de venta.
//
// Modelo: cache explícito por clave + invalidación por familia tras cada mutación
// exitosa + recomputo periódico para las vistas con intervalo. Cada clave lleva una
// generación; invalidar la incrementa, de modo que un recomputo iniciado antes de la
// invalidación nunca sobrescribe un resultado más nuevo.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/panaderia-ops/internal/domain"
	"github.com/jhoicas/panaderia-ops/pkg/logger"
)

// maxAttempts reintentos de Get cuando su recomputo queda obsoleto por una invalidación.
const maxAttempts = 3

// ErrSuperseded la vista fue invalidada repetidamente mientras se recomputaba.
var ErrSuperseded = errors.New("refresh: vista invalidada durante el recomputo")

// Key identifica una vista: familia de origen + nombre + parámetros (ej. id de cliente).
type Key struct {
	Family domain.Family
	View   string
	Params string
}

func (k Key) String() string {
	if k.Params == "" {
		return fmt.Sprintf("%s/%s", k.Family, k.View)
	}
	return fmt.Sprintf("%s/%s?%s", k.Family, k.View, k.Params)
}

// Policy política de refresco. Interval 0 = solo se recomputa tras invalidación;
// Interval > 0 = la vista caduca al cumplir esa edad (dashboards, badges).
type Policy struct {
	Interval time.Duration
}

// OnInvalidate política de refresco solo por invalidación.
func OnInvalidate() Policy { return Policy{} }

// Every política periódica.
func Every(d time.Duration) Policy { return Policy{Interval: d} }

// Periodic indica si la vista se refresca por tiempo.
func (p Policy) Periodic() bool { return p.Interval > 0 }

// ViewState lo que ve la capa de presentación: dato (último válido), carga y error.
type ViewState struct {
	Data      any
	IsLoading bool
	Err       error
	FetchedAt time.Time
}

// FetchFunc recomputa una vista desde lecturas frescas del ledger.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	err       error
	fetchedAt time.Time
	policy    Policy
}

// fresh: con error, una vista solo-invalidación se reintenta en la próxima lectura;
// una periódica conserva el error hasta su siguiente intervalo.
func (e *entry) fresh(now time.Time) bool {
	if !e.policy.Periodic() {
		return e.err == nil
	}
	return now.Sub(e.fetchedAt) < e.policy.Interval
}

type call struct {
	gen    uint64
	cancel context.CancelFunc
}

// Store cache de vistas con single-flight por clave.
type Store struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	gens     map[Key]uint64
	inflight map[Key]*call
	running  map[Key]int
	flight   singleflight.Group
	now      func() time.Time
	log      *logger.Logger
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj (tests de caducidad).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore crea un cache vacío.
func NewStore(log *logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Store{
		entries:  make(map[Key]*entry),
		gens:     make(map[Key]uint64),
		inflight: make(map[Key]*call),
		running:  make(map[Key]int),
		now:      time.Now,
		log:      log.Component("refresh"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get devuelve la vista vigente o la recomputa. Llamadas concurrentes sobre la misma
// clave y generación comparten un único recomputo.
//
// El recomputo no hereda la cancelación del llamador (otros pueden estar esperándolo);
// solo se cancela si la vista se invalida. El llamador deja de esperar si su ctx vence.
func (s *Store) Get(ctx context.Context, key Key, policy Policy, fetch FetchFunc) (any, error) {
	return s.load(ctx, key, policy, fetch, false)
}

// Refresh recomputa la vista aunque siga vigente. Si ya hay un recomputo en curso
// para la misma generación se une a él.
func (s *Store) Refresh(ctx context.Context, key Key, policy Policy, fetch FetchFunc) (any, error) {
	return s.load(ctx, key, policy, fetch, true)
}

func (s *Store) load(ctx context.Context, key Key, policy Policy, fetch FetchFunc, force bool) (any, error) {
	family := string(key.Family)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && !force && e.fresh(s.now()) {
			s.mu.Unlock()
			viewHitsTotal.WithLabelValues(family).Inc()
			if e.err != nil {
				return nil, e.err
			}
			return e.value, nil
		}
		gen, ok := s.gens[key]
		if !ok {
			s.gens[key] = 0
		}
		s.mu.Unlock()

		if attempt == 0 && !force {
			viewMissesTotal.WithLabelValues(family).Inc()
		}

		ch := s.flight.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
			return s.fetch(ctx, key, gen, policy, fetch)
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if errors.Is(res.Err, ErrSuperseded) {
				continue
			}
			return res.Val, res.Err
		}
	}
	return nil, ErrSuperseded
}

func (s *Store) fetch(parent context.Context, key Key, gen uint64, policy Policy, fetch FetchFunc) (any, error) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	s.mu.Lock()
	if s.gens[key] != gen {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	s.inflight[key] = &call{gen: gen, cancel: cancel}
	s.running[key]++
	startedAt := s.now()
	s.mu.Unlock()

	start := time.Now()
	val, err := fetch(ctx)
	viewFetchDuration.WithLabelValues(string(key.Family)).Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[key]--; s.running[key] == 0 {
		delete(s.running, key)
	}
	if c, ok := s.inflight[key]; ok && c.gen == gen {
		delete(s.inflight, key)
	}
	if s.gens[key] != gen {
		viewSuppressedWritesTotal.WithLabelValues(string(key.Family)).Inc()
		s.log.Debug().Str("view", key.String()).Uint64("gen", gen).Msg("resultado obsoleto descartado")
		return nil, ErrSuperseded
	}

	if err != nil {
		viewFetchErrorsTotal.WithLabelValues(string(key.Family)).Inc()
		s.log.Warn().Err(err).Str("view", key.String()).Msg("recomputo de vista fallido")
		failed := &entry{err: err, fetchedAt: startedAt, policy: policy}
		if prev, ok := s.entries[key]; ok {
			failed.value = prev.value
		}
		s.entries[key] = failed
		return nil, err
	}

	s.entries[key] = &entry{value: val, fetchedAt: startedAt, policy: policy}
	return val, nil
}

// Invalidate descarta todas las vistas de las familias indicadas y cancela sus
// recomputos en curso. Devuelve cuántas vistas cacheadas se descartaron.
func (s *Store) Invalidate(families ...domain.Family) int {
	if len(families) == 0 {
		return 0
	}
	match := make(map[domain.Family]bool, len(families))
	for _, f := range families {
		match[f] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key := range s.gens {
		if !match[key.Family] {
			continue
		}
		if s.invalidateLocked(key) {
			dropped++
		}
	}
	for f := range match {
		viewInvalidationsTotal.WithLabelValues(string(f)).Inc()
	}
	s.log.Debug().Interface("families", families).Int("dropped", dropped).Msg("vistas invalidadas")
	return dropped
}

// InvalidateKey descarta una sola vista.
func (s *Store) InvalidateKey(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gens[key]; !ok {
		return false
	}
	viewInvalidationsTotal.WithLabelValues(string(key.Family)).Inc()
	return s.invalidateLocked(key)
}

// invalidateLocked sin dato cacheado ni recomputo vivo la generación ya no protege
// nada y se libera; así las claves parametrizadas (mensajes por cliente) no se acumulan.
func (s *Store) invalidateLocked(key Key) bool {
	_, cached := s.entries[key]
	if !cached && s.running[key] == 0 {
		delete(s.gens, key)
		return false
	}
	s.gens[key]++
	if c, ok := s.inflight[key]; ok {
		c.cancel()
		delete(s.inflight, key)
	}
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		return true
	}
	return false
}

// State estado actual de la vista sin disparar recomputo.
func (s *Store) State(key Key) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st ViewState
	if e, ok := s.entries[key]; ok {
		st.Data = e.value
		st.Err = e.err
		st.FetchedAt = e.fetchedAt
	}
	if c, ok := s.inflight[key]; ok && c.gen == s.gens[key] {
		st.IsLoading = true
	}
	return st
}

// Generation generación vigente de la clave (0 si nunca se leyó ni invalidó).
func (s *Store) Generation(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[key]
}

// Tracked cuántas claves conservan generación.
func (s *Store) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gens)
}
