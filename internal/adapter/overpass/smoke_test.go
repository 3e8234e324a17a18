//go:build smoke

package overpass

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the public Overpass API (or OVERPASS_URL when set).
// Run with: go test -tags=smoke ./internal/adapter/overpass/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	url := os.Getenv("OVERPASS_URL")
	if url == "" {
		url = config.DefaultOverpassURL
	}
	return NewClient(url, 60*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_QueryIstanbul(t *testing.T) {
	c := smokeClient(t)

	elements, err := c.Query(context.Background(), 41.0082, 28.9784, 2000)
	require.NoError(t, err)
	require.NotEmpty(t, elements, "central Istanbul has hospitals and schools")

	items := domain.ClassifyAll(elements, 41.0082, 28.9784)
	for _, item := range items {
		assert.NotEmpty(t, item.Type)
		assert.NotEmpty(t, item.Name)
		assert.Less(t, item.DistanceKm, 2.5, "results stay near the search radius")
	}
}
