package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/panaderia-ops/pkg/logger"
)

// minTick piso del tick para intervalos sin divisor común razonable.
const minTick = time.Second

// Warmer vista que el Refresher puede mantener caliente.
type Warmer interface {
	Key() Key
	Policy() Policy
	Warm(ctx context.Context) error
}

// Refresher recomputa periódicamente las vistas con intervalo para que el dashboard
// se actualice solo aunque nadie lo esté leyendo.
//
// Cada vista lleva su propia hora de vencimiento: le toca en el primer tick que cae
// dentro de una décima de tick de esa hora, así el jitter del ticker o lo que tarde
// el recomputo no la empujan al tick siguiente.
type Refresher struct {
	views []Warmer
	tick  time.Duration
	now   func() time.Time
	log   *logger.Logger

	mu  sync.Mutex
	due map[Key]time.Time
}

// NewRefresher ignora las vistas solo-invalidación; el tick es el máximo común divisor
// de los intervalos registrados.
func NewRefresher(log *logger.Logger, views ...Warmer) *Refresher {
	if log == nil {
		log = logger.NewNop()
	}
	r := &Refresher{
		now: time.Now,
		log: log.Component("refresher"),
		due: make(map[Key]time.Time),
	}
	for _, v := range views {
		p := v.Policy()
		if !p.Periodic() {
			continue
		}
		r.views = append(r.views, v)
		r.tick = gcd(r.tick, p.Interval)
	}
	if r.tick > 0 && r.tick < minTick {
		r.tick = minTick
	}
	return r
}

// WithClock reemplaza el reloj con el que se calculan los vencimientos.
func (r *Refresher) WithClock(now func() time.Time) *Refresher {
	r.now = now
	return r
}

// Views vistas periódicas bajo control del Refresher.
func (r *Refresher) Views() []Warmer { return r.views }

// Tick cada cuánto revisa vencimientos Run.
func (r *Refresher) Tick() time.Duration { return r.tick }

// Run bloquea hasta que ctx se cancela. Calienta todo al arrancar y luego en cada tick
// recomputa solo las vistas vencidas.
func (r *Refresher) Run(ctx context.Context) {
	if len(r.views) == 0 {
		return
	}
	r.WarmAll(ctx)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.WarmAll(ctx)
		}
	}
}

// WarmAll una pasada sobre las vistas vencidas; los errores quedan como estado de la vista.
func (r *Refresher) WarmAll(ctx context.Context) {
	slack := r.tick / 10
	for _, v := range r.views {
		now := r.now()
		r.mu.Lock()
		due, seen := r.due[v.Key()]
		if seen && now.Add(slack).Before(due) {
			r.mu.Unlock()
			continue
		}
		r.due[v.Key()] = now.Add(v.Policy().Interval)
		r.mu.Unlock()

		if err := v.Warm(ctx); err != nil && ctx.Err() == nil {
			r.log.Warn().Err(err).Str("view", v.Key().String()).Msg("refresco periódico fallido")
		}
	}
}

func gcd(a, b time.Duration) time.Duration {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
