package metrics

import "github.com/prometheus/client_golang/prometheus"

// Operation Prometheus metrics.
var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookdex",
			Name:      "operations_total",
			Help:      "Total number of library operations",
		},
		[]string{"operation", "status"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookdex",
			Name:      "operation_duration_seconds",
			Help:      "Library operation duration in seconds, connection setup included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	SessionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bookdex",
			Name:      "sessions_open",
			Help:      "Connections currently held by running operations",
		},
	)
)

var opMetricsRegistered bool

// RegisterOperationMetrics registers Prometheus operation metrics. Must be called once from main.
func RegisterOperationMetrics() {
	if opMetricsRegistered {
		return
	}
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationDuration)
	prometheus.MustRegister(SessionsOpen)
	opMetricsRegistered = true
}
