package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewUsesIsolatedRegistry(t *testing.T) {
	a := New()
	b := New()

	a.InterestsTotal.Inc()

	require.Equal(t, 1.0, testutil.ToFloat64(a.InterestsTotal))
	require.Equal(t, 0.0, testutil.ToFloat64(b.InterestsTotal))
}

func TestResultCounters(t *testing.T) {
	m := New()

	m.RegistrationsTotal.WithLabelValues(ResultSuccess).Inc()
	m.RegistrationsTotal.WithLabelValues(ResultTaken).Inc()
	m.RegistrationsTotal.WithLabelValues(ResultTaken).Inc()
	m.LoginsTotal.WithLabelValues(ResultDenied).Inc()

	require.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(ResultSuccess)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(ResultTaken)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(ResultDenied)))
}

func TestInstrument(t *testing.T) {
	m := New()

	h := m.Instrument("GET /api/matches/{userId}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/matches/abc", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET /api/matches/{userId}", "403", "get"))
	require.Equal(t, 3.0, got)
	require.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.MatchesFormedTotal.Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.Contains(string(body), "mutual_interests_matches_formed_total 1"))
	require.Contains(t, string(body), "go_goroutines")
}
