package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

// ErrUpstream marks any failure to obtain a usable feed from NeoWs.
var ErrUpstream = errors.New("NASA feed unavailable")

// Client implements domain.FeedSource using the NASA NeoWs feed API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

var _ domain.FeedSource = (*Client)(nil)

// NewClient creates a NeoWs client. connectTimeout bounds the TCP dial only.
func NewClient(baseURL, apiKey string, connectTimeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: transport},
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchFeed returns the NEO records between startDate and endDate inclusive
// (YYYY-MM-DD). Every error wraps ErrUpstream.
func (c *Client) FetchFeed(ctx context.Context, startDate, endDate string) ([]domain.NearEarthObject, error) {
	params := url.Values{
		"start_date": {startDate},
		"end_date":   {endDate},
		"api_key":    {c.apiKey},
	}
	u := c.baseURL + "/feed?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(observability.UpstreamNASA).Observe(time.Since(start).Seconds())
	if err != nil {
		c.recordOutcome("error")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordOutcome("error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: NASA API returned status %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordOutcome("error")
		return nil, fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	records, err := parseFeed(body)
	if err != nil {
		c.recordOutcome("error")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	c.recordOutcome("success")

	c.logger.Debug("neo feed fetched", "start_date", startDate, "end_date", endDate, "records", len(records))
	return records, nil
}

func (c *Client) recordOutcome(outcome string) {
	c.metrics.UpstreamRequests.WithLabelValues(observability.UpstreamNASA, outcome).Inc()
}

// redactKey strips the request URL, which carries the API key, from transport errors.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s feed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
