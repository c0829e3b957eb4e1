package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	accessDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_access_denials_total",
		Help: "Count of location access denials by role",
	}, []string{"role"})

	ledgerMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_ledger_mutations_total",
		Help: "Count of inventory ledger mutations by kind and result",
	}, []string{"kind", "result"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAccessDenial counts a location access denial.
func ObserveAccessDenial(role string) {
	accessDenials.WithLabelValues(role).Inc()
}

// ObserveLedgerMutation counts an adjust/transfer/approval outcome.
func ObserveLedgerMutation(kind, result string) {
	ledgerMutations.WithLabelValues(kind, result).Inc()
}
