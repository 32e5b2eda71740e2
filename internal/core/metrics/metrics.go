// Package metrics exposes Prometheus instruments for filter requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// filterRequests counts filter requests.
	// Labels: mode (strict, soft), status (ok or a gRPC code name)
	filterRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fontfilter",
		Subsystem: "filter",
		Name:      "requests_total",
		Help:      "Total filter requests",
	}, []string{"mode", "status"})

	// filterDuration measures end-to-end filter latency.
	filterDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fontfilter",
		Subsystem: "filter",
		Name:      "duration_seconds",
		Help:      "Filter request latency in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"mode"})

	// filterSelectivity is the fraction of input records kept.
	filterSelectivity = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fontfilter",
		Subsystem: "filter",
		Name:      "selectivity_ratio",
		Help:      "Fraction of input records kept by a filter",
		Buckets:   []float64{0, 0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1},
	}, []string{"mode"})

	// softSteps counts soft-filter steps by outcome.
	// Labels: outcome (applied, skipped)
	softSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fontfilter",
		Subsystem: "soft",
		Name:      "steps_total",
		Help:      "Soft filter steps by outcome",
	}, []string{"outcome"})
)

// ObserveFilter records one completed filter request.
func ObserveFilter(mode, status string, elapsed time.Duration, in, out int) {
	filterRequests.WithLabelValues(mode, status).Inc()
	filterDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if in > 0 {
		filterSelectivity.WithLabelValues(mode).Observe(float64(out) / float64(in))
	}
}

// ObserveSoftStep records whether a soft-filter condition narrowed the set.
func ObserveSoftStep(applied bool) {
	outcome := "skipped"
	if applied {
		outcome = "applied"
	}
	softSteps.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
