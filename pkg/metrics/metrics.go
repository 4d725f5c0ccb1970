package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItinerariesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayplan_itineraries_generated_total",
			Help: "Itineraries produced, by the tier that produced them",
		},
		[]string{"provenance"},
	)

	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayplan_upstream_failures_total",
			Help: "Recovered failures per ladder stage",
		},
		[]string{"stage"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayplan_generation_duration_seconds",
			Help:    "Time spent producing an itinerary document",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provenance"},
	)
)
