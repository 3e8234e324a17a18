package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neo_impact"

// Upstream label values.
const (
	UpstreamNASA     = "nasa"
	UpstreamOverpass = "overpass"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec // labels: route, code

	// Upstream API calls.
	UpstreamRequests *prometheus.CounterVec   // labels: upstream={nasa,overpass}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: upstream
	OverpassFailures *prometheus.CounterVec   // labels: reason={transport,status,decode}

	// NEO feed cache.
	NEOCache *prometheus.CounterVec // labels: result={hit,miss}

	// Impact reports.
	ImpactReports       prometheus.Counter
	InfrastructureItems prometheus.Histogram
}

var (
	upstreamBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
	itemBuckets     = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.OverpassFailures,
		m.NEOCache,
		m.ImpactReports,
		m.InfrastructureItems,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route template and status code.",
		}, []string{"route", "code"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outbound API requests by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound API request duration in seconds.",
			Buckets:   upstreamBuckets,
		}, []string{"upstream"}),
		OverpassFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overpass_failures_total",
			Help:      "Overpass queries that degraded to an empty result, by reason.",
		}, []string{"reason"}),
		NEOCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "neo_cache_total",
			Help:      "NEO feed cache lookups by result.",
		}, []string{"result"}),
		ImpactReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "impact_reports_total",
			Help:      "Impact reports generated.",
		}),
		InfrastructureItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "impact_infrastructure_items",
			Help:      "Classified infrastructure items per impact report.",
			Buckets:   itemBuckets,
		}),
	}
}
