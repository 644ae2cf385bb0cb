package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// lookups counts Acquire calls by result ("hit" or "miss").
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxemit_cache_lookups_total",
		Help: "Spectral cache lookups by result",
	}, []string{"result"})

	// builds counts Build calls that integrated a window, by outcome.
	builds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxemit_cache_builds_total",
		Help: "Spectral cache builds by outcome",
	}, []string{"outcome"})

	// overrides counts Override calls by outcome.
	overrides = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxemit_cache_overrides_total",
		Help: "Spectral cache overrides by outcome",
	}, []string{"outcome"})

	// storedEntries tracks the entry count of the most recently installed cache.
	storedEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxemit_cache_stored_entries",
		Help: "Stored entries of the most recently installed spectral cache",
	})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
