package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	computes    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	paths       *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		computes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_computations_total",
				Help: "Total number of computations by model",
			},
			[]string{"model"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		paths: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_paths_simulated_total",
				Help: "Total number of Monte Carlo paths generated",
			},
			[]string{"model"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quantlab_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCompute records one computation for a model.
func (r *Recorder) RecordCompute(model string) {
	r.computes.WithLabelValues(model).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordPathsSimulated records how many paths a simulation produced.
func (r *Recorder) RecordPathsSimulated(model string, n int) {
	r.paths.WithLabelValues(model).Add(float64(n))
}
