package refresh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus del controlador de vistas, etiquetadas por familia.
var (
	viewHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panaderia_view_cache_hits_total",
		Help: "Lecturas servidas desde una vista cacheada vigente",
	}, []string{"family"})

	viewMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panaderia_view_cache_misses_total",
		Help: "Lecturas que requirieron recomputar la vista",
	}, []string{"family"})

	viewFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "panaderia_view_fetch_duration_seconds",
		Help:    "Tiempo de recomputo de una vista contra el ledger",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"family"})

	viewFetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panaderia_view_fetch_errors_total",
		Help: "Recomputos fallidos (la vista queda en estado de error)",
	}, []string{"family"})

	viewInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panaderia_view_invalidations_total",
		Help: "Invalidaciones por familia tras una mutación exitosa",
	}, []string{"family"})

	viewSuppressedWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panaderia_view_suppressed_writes_total",
		Help: "Resultados descartados por pertenecer a una generación invalidada",
	}, []string{"family"})
)
