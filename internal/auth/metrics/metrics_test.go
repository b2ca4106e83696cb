package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/tollgate/internal/auth/metrics"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	b, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHTTPMiddleware(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.HTTPMiddleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/2", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	out := scrape(t, m)
	require.Contains(t, out, `tollgate_http_requests_total{code="418",pattern="GET /api/posts/{id}"} 2`)
	require.Contains(t, out, `tollgate_http_requests_total{code="404",pattern="unmatched"} 1`)
	require.Contains(t, out, `tollgate_http_request_duration_seconds_count{pattern="GET /api/posts/{id}"} 2`)
}

func TestObservers(t *testing.T) {
	m := metrics.New()
	m.ObserveAuth("ok")
	m.ObserveAuth("ok")
	m.ObserveAuth("expired")
	m.ObserveSession(metrics.EventRefresh, "mismatch")

	out := scrape(t, m)
	require.Contains(t, out, `tollgate_auth_outcomes_total{outcome="ok"} 2`)
	require.Contains(t, out, `tollgate_auth_outcomes_total{outcome="expired"} 1`)
	require.Contains(t, out, `tollgate_session_events_total{event="refresh",result="mismatch"} 1`)
	require.Contains(t, out, "go_goroutines")
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveAuth("ok")
	m.ObserveSession(metrics.EventLogin, "ok")

	called := false
	h := m.HTTPMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
