package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gethavoc/havoc/pkg/chaos"
	"github.com/gethavoc/havoc/pkg/metrics"
)

func newTestAPI(t *testing.T, probability float64, opts ...Option) (*API, *chaos.Engine) {
	t.Helper()
	e, err := chaos.New(chaos.Options{Probability: &probability})
	require.NoError(t, err)
	return New(e, 0, opts...), e
}

func TestHealthz(t *testing.T) {
	a, _ := newTestAPI(t, 0)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetStats(t *testing.T) {
	a, e := newTestAPI(t, 0)
	for i := 0; i < 3; i++ {
		e.Decide(chaos.Request{Path: "/api/x", Method: "GET"})
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/chaos/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var s chaos.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, int64(3), s.TotalRequests)
	assert.Equal(t, int64(0), s.ChaosInjected)
}

func TestResetStats(t *testing.T) {
	a, e := newTestAPI(t, 0)
	e.Decide(chaos.Request{Path: "/api/x", Method: "GET"})

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/chaos/stats/reset", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, chaos.Snapshot{}, e.Stats())
}

func TestGetConfig(t *testing.T) {
	a, _ := newTestAPI(t, 0.42)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/chaos/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var cfg chaos.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 0.42, cfg.Probability)
	assert.NotEmpty(t, cfg.ErrorCodes)
}

func TestListProfiles(t *testing.T) {
	a, _ := newTestAPI(t, 0)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/chaos/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var profiles []chaos.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	assert.NotEmpty(t, profiles)
}

func TestGetProfileByName(t *testing.T) {
	a, _ := newTestAPI(t, 0)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/chaos/profiles/flaky", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p chaos.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "flaky", p.Name)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/chaos/profiles/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsMounted(t *testing.T) {
	recorder := metrics.NewRecorder()
	a, _ := newTestAPI(t, 0, WithMetrics(recorder))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsNotMountedWithoutRecorder(t *testing.T) {
	a, _ := newTestAPI(t, 0)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
