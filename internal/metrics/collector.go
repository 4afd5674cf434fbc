// Package metrics exposes Prometheus metrics for filter requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ukaji3/sheetfilter-go/internal/config"
)

// Filter outcomes used as the "outcome" label.
const (
	OutcomeMatched        = "matched"
	OutcomeNoMatches      = "no_matches"
	OutcomeParseError     = "parse_error"
	OutcomeColumnNotFound = "column_not_found"
	OutcomeEmptyQuery     = "empty_query"
	OutcomeBadRequest     = "bad_request"
)

// Collector owns a private registry and the filter metrics registered on it.
//
// Metrics:
//   - <ns>_filter_requests_total: filter requests by outcome
//   - <ns>_filter_duration_seconds: time spent parsing and filtering
//   - <ns>_filter_matched_rows: rows returned by successful filters
type Collector struct {
	cfg      config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal *prometheus.CounterVec
	duration      prometheus.Histogram
	matchedRows   prometheus.Histogram
}

// NewCollector creates a collector and registers its metrics, plus the Go
// runtime and process collectors, on a fresh registry.
func NewCollector(cfg config.MetricsConfig) *Collector {
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	c := &Collector{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "filter_requests_total",
				Help:      "Total number of filter requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "filter_duration_seconds",
				Help:      "Time spent parsing a workbook and filtering it",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		matchedRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "filter_matched_rows",
				Help:      "Number of rows returned by successful filter requests",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	c.registry.MustRegister(
		c.requestsTotal,
		c.duration,
		c.matchedRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveFilter records one filter request.
// matched is only recorded for the matched and no_matches outcomes.
func (c *Collector) ObserveFilter(outcome string, elapsed time.Duration, matched int) {
	if c == nil || !c.cfg.Enabled {
		return
	}

	c.requestsTotal.WithLabelValues(outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
	if outcome == OutcomeMatched || outcome == OutcomeNoMatches {
		c.matchedRows.Observe(float64(matched))
	}
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry in exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
