// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the account-domain counters plus the per-request counter fed
// by the HTTP middleware. All collectors live in a dedicated registry.
type Metrics struct {
	Registrations prometheus.Counter
	Logins        prometheus.Counter
	UserDataReads prometheus.Counter

	requests *prometheus.CounterVec
	registry *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "registrations_total",
			Help:      "Count of successful user registrations",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "logins_total",
			Help:      "Count of successful user logins",
		}),
		UserDataReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "user_data_requests_total",
			Help:      "Count of /users-data accesses",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.Registrations, m.Logins, m.UserDataReads, m.requests)
	return m
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.requests.With(prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}).Inc()
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
