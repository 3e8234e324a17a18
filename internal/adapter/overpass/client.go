package overpass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

const userAgent = "neo-impact-service/1.0 (+https://github.com/couchcryptid/neo-impact-service)"

// Failure reasons recorded in overpass_failures_total.
const (
	reasonTransport = "transport"
	reasonStatus    = "status"
	reasonDecode    = "decode"
)

// StatusError reports a non-200 response from the interpreter.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("overpass API error: status %d: %s", e.StatusCode, e.Body)
}

// Client queries an Overpass API interpreter for infrastructure features.
type Client struct {
	httpClient *http.Client
	url        string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Overpass client posting to interpreterURL.
func NewClient(interpreterURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:     interpreterURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Nearby returns the features within radiusMeters of (lat, lng). Upstream
// failures are logged and counted, and yield an empty list.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radiusMeters int) []domain.OSMElement {
	elements, err := c.Query(ctx, lat, lng, radiusMeters)
	if err != nil {
		c.metrics.OverpassFailures.WithLabelValues(failureReason(err)).Inc()
		c.logger.Warn("overpass query failed, continuing without infrastructure",
			"lat", lat, "lng", lng, "radius_m", radiusMeters, "error", err)
		return []domain.OSMElement{}
	}
	return elements
}

// Query posts the infrastructure query and returns the parsed elements.
func (c *Client) Query(ctx context.Context, lat, lng float64, radiusMeters int) ([]domain.OSMElement, error) {
	form := url.Values{"data": {BuildQuery(lat, lng, radiusMeters)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(observability.UpstreamOverpass).Observe(time.Since(start).Seconds())
	if err != nil {
		c.recordOutcome("error")
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordOutcome("error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordOutcome("error")
		return nil, fmt.Errorf("read overpass response: %w", err)
	}

	elements, skipped, err := ParseElements(body)
	if err != nil {
		c.recordOutcome("error")
		return nil, err
	}
	c.recordOutcome("success")

	c.logger.Debug("overpass query complete",
		"elements", len(elements), "skipped", skipped, "radius_m", radiusMeters)
	return elements, nil
}

func (c *Client) recordOutcome(outcome string) {
	c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamOverpass, outcome).Inc()
}

func failureReason(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return reasonStatus
	case errors.Is(err, ErrDecode):
		return reasonDecode
	default:
		return reasonTransport
	}
}
