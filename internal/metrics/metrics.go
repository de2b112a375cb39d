package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "tidecal"

var (
	anomalousExtrema = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "anomalous_extrema_total",
			Subsystem: subsystem,
			Help:      "Candidate extrema dropped because their height was out of range.",
		},
		[]string{"kind"},
	)

	modelLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "model_loads_total",
			Subsystem: subsystem,
			Help:      "Harmonic model resolutions by result.",
		},
		[]string{"result"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "cache_lookups_total",
			Subsystem: subsystem,
			Help:      "Tide aggregate cache lookups by layer and result.",
		},
		[]string{"layer", "result"},
	)
)

// Model load results.
const (
	ModelCached   = "cached"
	ModelLoaded   = "loaded"
	ModelNotFound = "not_found"
	ModelInvalid  = "invalid"
)

func init() {
	prometheus.MustRegister(
		anomalousExtrema,
		modelLoads,
		cacheLookups,
	)
}

func IncAnomalousExtrema(kind string) {
	anomalousExtrema.With(prometheus.Labels{"kind": kind}).Inc()
}

func IncModelLoad(result string) {
	modelLoads.With(prometheus.Labels{"result": result}).Inc()
}

// ObserveCacheLookup records a lookup against one cache layer ("lru" or
// "dynamo").
func ObserveCacheLookup(layer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.With(prometheus.Labels{
		"layer":  layer,
		"result": result,
	}).Inc()
}
