package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Registrations.Inc()
	m.Registrations.Inc()
	m.Logins.Inc()
	m.UserDataReads.Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Registrations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Logins))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UserDataReads))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("POST", "/register", 200)
	m.ObserveRequest("POST", "/register", 200)
	m.ObserveRequest("POST", "/login", 401)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/register", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/login", "401")))
}

func TestMetrics_HandlerExposition(t *testing.T) {
	m := New()
	m.Logins.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)

	assert.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "accounts_logins_total 1")
}
