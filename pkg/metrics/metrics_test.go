package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuery(t *testing.T) {
	r := metrics.NewRegistry()

	r.RecordQuery(&domain.QueryEvent{
		Kind:     domain.KindProbability,
		Duration: time.Millisecond,
		Result:   &domain.QueryResult{Probability: 0.28417, Additions: 7, Multiplications: 16},
	})
	r.RecordQuery(&domain.QueryEvent{Kind: domain.KindProbability, Err: errors.New("boom")})
	r.RecordQuery(&domain.QueryEvent{Kind: domain.KindIndependence, Cached: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(domain.KindProbability, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(domain.KindProbability, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(domain.KindIndependence, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheHitsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(r.FactorOperations))
}

func TestHooks_Chain(t *testing.T) {
	r := metrics.NewRegistry()

	var seen []string
	hooks := r.Hooks(domain.LifecycleHooks{
		OnQuery: func(_ context.Context, e *domain.QueryEvent) {
			seen = append(seen, e.Query)
		},
	}, domain.LifecycleHooks{})

	hooks.OnQuery(context.Background(), &domain.QueryEvent{Kind: domain.KindIndependence, Query: "A-B|"})

	assert.Equal(t, []string{"A-B|"}, seen)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(domain.KindIndependence, "ok")))
}

func TestHandler(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordHTTPRequest("POST", "/query", "200", 5*time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bayesnet_http_requests_total{method="POST",route="/query",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
