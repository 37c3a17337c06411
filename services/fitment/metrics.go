package fitment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeVehicle     = "vehicle"
	modeBoltPattern = "bolt_pattern"
	modeCatalog     = "catalog"

	outcomeOK       = "ok"
	outcomeEmpty    = "empty"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	resolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rimsurge",
			Subsystem: "fitment",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of fitment resolutions.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	resolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rimsurge",
			Subsystem: "fitment",
			Name:      "resolve_total",
			Help:      "Fitment resolutions by outcome.",
		},
		[]string{"mode", "outcome"},
	)

	facetQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rimsurge",
			Subsystem: "fitment",
			Name:      "facet_queries_total",
			Help:      "Facet sub-queries issued against the catalog.",
		},
		[]string{"facet"},
	)
)
