package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"result"})

	shopTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_shop_transitions_total",
		Help: "Shop lifecycle transitions applied by admins",
	}, []string{"from", "to"})

	itemsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_items_created_total",
		Help: "Catalog items created per kind",
	}, []string{"kind"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin counts a login attempt; result is "success", "invalid_credentials" or "inactive".
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func ObserveShopTransition(from, to string) {
	shopTransitions.WithLabelValues(from, to).Inc()
}

func ObserveItemCreated(kind string) {
	itemsCreated.WithLabelValues(kind).Inc()
}
