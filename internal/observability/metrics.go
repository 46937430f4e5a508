package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "brewery_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Record Source metrics.
	SourceRequests        *prometheus.CounterVec   // labels: endpoint={list,detail}, outcome={success,transport_error,malformed,not_found}
	SourceRequestDuration *prometheus.HistogramVec // labels: endpoint={list,detail}
	PagesFetched          prometheus.Counter
	FetchRetries          prometheus.Counter

	// Snapshot lifecycle metrics.
	RecordsLoaded      prometheus.Gauge
	Loading            prometheus.Gauge
	LoadErrors         prometheus.Counter
	LoadDuration       prometheus.Histogram
	SnapshotsPublished prometheus.Counter

	// Cache metrics.
	DetailCache *prometheus.CounterVec // labels: result={hit,miss}
	ViewCache   *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceRequests,
		m.SourceRequestDuration,
		m.PagesFetched,
		m.FetchRetries,
		m.RecordsLoaded,
		m.Loading,
		m.LoadErrors,
		m.LoadDuration,
		m.SnapshotsPublished,
		m.DetailCache,
		m.ViewCache,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are never exported. Used by
// one-shot commands that have no /metrics endpoint.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Record Source requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		SourceRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "Record Source request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "List pages fetched from the Record Source, including the terminating empty page.",
		}),
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_retries_total",
			Help:      "Page fetches retried after a transport failure.",
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Records held by the current snapshot.",
		}),
		Loading: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loading",
			Help:      "1 while a snapshot load is in flight, 0 otherwise.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Snapshot loads that ended in a fetch failure.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete snapshot load.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Snapshot summaries written to the sink topic.",
		}),
		DetailCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_cache_total",
			Help:      "Brewery detail cache lookups by result.",
		}, []string{"result"}),
		ViewCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_cache_total",
			Help:      "Dashboard view cache lookups by result.",
		}, []string{"result"}),
	}
}
