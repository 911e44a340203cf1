package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the verification API.
type Metrics struct {
	Resolutions        *prometheus.CounterVec
	ResolutionFailures prometheus.Counter
	DirectoryLookups   *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dremo_resolutions_total",
			Help: "Successful identity resolutions by winning source",
		}, []string{"source"}),
		ResolutionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dremo_resolution_failures_total",
			Help: "Resolutions where every provider failed",
		}),
		DirectoryLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dremo_directory_lookups_total",
			Help: "Directory lookups by outcome status",
		}, []string{"status"}),
	}
}
