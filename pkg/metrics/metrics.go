package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK = "ok"
)

var (
	// Registry holds every orkactl metric. It is separate from the default
	// registry so a textfile dump only contains orka series.
	Registry = prometheus.NewRegistry()

	// Validation metrics
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orka_validations_total",
			Help: "Total number of workload validations by kind and result",
		},
		[]string{"kind", "result"},
	)

	ValidationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orka_validation_duration_seconds",
			Help:    "Time taken to validate and normalize a workload document",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orka_api_requests_total",
			Help: "Total number of API requests by method, endpoint and status",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orka_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	Registry.MustRegister(ValidationsTotal)
	Registry.MustRegister(ValidationDuration)
	Registry.MustRegister(APIRequestsTotal)
	Registry.MustRegister(APIRequestDuration)
}

// RecordValidation counts one validation. result is ResultOK or the error kind.
func RecordValidation(kind, result string) {
	if kind == "" {
		kind = "unknown"
	}
	ValidationsTotal.WithLabelValues(kind, result).Inc()
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
