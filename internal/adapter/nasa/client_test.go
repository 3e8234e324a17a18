package nasa

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) (*Client, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return NewClient(baseURL, testAPIKey, 2*time.Second, m, discardLogger()), m
}

func TestClient_FetchFeed_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/rest/v1/feed", r.URL.Path)
		assert.Equal(t, "2026-10-15", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-10-16", r.URL.Query().Get("end_date"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	c, m := testClient(srv.URL + "/neo/rest/v1")
	records, err := c.FetchFeed(context.Background(), "2026-10-15", "2026-10-16")
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.InDelta(t, 1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(observability.UpstreamNASA, "success")), 0)
}

func TestClient_FetchFeed_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"OVER_RATE_LIMIT"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, m := testClient(srv.URL)
	_, err := c.FetchFeed(context.Background(), "2026-10-15", "2026-10-15")

	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "status 429")
	assert.InDelta(t, 1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(observability.UpstreamNASA, "error")), 0)
}

func TestClient_FetchFeed_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"links": {}}`)
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL)
	_, err := c.FetchFeed(context.Background(), "2026-10-15", "2026-10-15")

	require.ErrorIs(t, err, ErrUpstream)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestClient_FetchFeed_TransportFailureHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c, _ := testClient(baseURL)
	_, err := c.FetchFeed(context.Background(), "2026-10-15", "2026-10-15")

	require.ErrorIs(t, err, ErrUpstream)
	assert.NotContains(t, err.Error(), testAPIKey)
}
