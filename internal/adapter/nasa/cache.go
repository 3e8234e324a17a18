package nasa

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

// CachedFeed wraps a FeedSource with an in-memory TTL cache keyed by date range.
type CachedFeed struct {
	inner        domain.FeedSource
	ttl          time.Duration
	fetchTimeout time.Duration
	clock        clockwork.Clock
	metrics      *observability.Metrics
	logger       *slog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// cacheEntry keeps records and their fetch time together so a reader never
// pairs one entry's records with another's timestamp.
type cacheEntry struct {
	records  []domain.NearEarthObject
	storedAt time.Time
}

// NewCachedFeed creates a cache decorator around a feed source. Each shared
// upstream fetch is bounded by fetchTimeout.
func NewCachedFeed(inner domain.FeedSource, ttl, fetchTimeout time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *CachedFeed {
	return &CachedFeed{
		inner:        inner,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
		entries:      make(map[string]cacheEntry),
	}
}

// Today returns the current calendar date in the server's local time zone.
func (c *CachedFeed) Today() time.Time {
	return c.clock.Now().Local()
}

// TodayFeed returns the records for today's date.
func (c *CachedFeed) TodayFeed(ctx context.Context) ([]domain.NearEarthObject, error) {
	today := c.Today()
	return c.Feed(ctx, today, today)
}

// Feed returns the records for the inclusive date range, serving a cached copy
// while it is no older than the TTL. The returned slice is shared and must not
// be modified.
func (c *CachedFeed) Feed(ctx context.Context, start, end time.Time) ([]domain.NearEarthObject, error) {
	startDate, endDate := start.Format(dateLayout), end.Format(dateLayout)
	key := startDate + "_" + endDate

	if records, ok := c.lookup(key); ok {
		c.metrics.NEOCache.WithLabelValues("hit").Inc()
		return records, nil
	}
	c.metrics.NEOCache.WithLabelValues("miss").Inc()

	// Concurrent misses share one upstream fetch. The fetch outlives any single
	// caller's cancellation so the others still get a result, but never
	// outlives fetchTimeout.
	ch := c.group.DoChan(key, func() (any, error) {
		if records, ok := c.lookup(key); ok {
			return records, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		records, err := c.inner.FetchFeed(fetchCtx, startDate, endDate)
		if err != nil {
			c.logger.Warn("neo feed fetch failed", "key", key, "error", err)
			return nil, err
		}
		c.store(key, records)
		c.logger.Info("neo feed cached", "key", key, "records", len(records))
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.NearEarthObject), nil
	}
}

func (c *CachedFeed) lookup(key string) ([]domain.NearEarthObject, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.clock.Since(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.records, true
}

func (c *CachedFeed) store(key string, records []domain.NearEarthObject) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{records: records, storedAt: c.clock.Now()}
	c.mu.Unlock()
}
