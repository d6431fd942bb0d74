package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backend Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anuvad",
			Name:      "backend_requests_total",
			Help:      "Total number of backend requests",
		},
		[]string{"operation", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "anuvad",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	PollTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anuvad",
			Name:      "poll_ticks_total",
			Help:      "Status poll ticks by outcome",
		},
		[]string{"outcome"}, // "update" / "terminal" / "transport_error"
	)

	ArtifactBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anuvad",
			Name:      "artifact_bytes_total",
			Help:      "Artifact bytes downloaded",
		},
		[]string{"kind"},
	)
)

var backendMetricsRegistered bool

// RegisterBackendMetrics registers Prometheus backend metrics. Must be called once from main.
func RegisterBackendMetrics() {
	if backendMetricsRegistered {
		return
	}
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(PollTicksTotal)
	prometheus.MustRegister(ArtifactBytesTotal)
	backendMetricsRegistered = true
}
