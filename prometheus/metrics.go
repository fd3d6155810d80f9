// Package prometheus instruments blaulicht interfaces with Prometheus
// metrics. A run is a batch job, so metrics are exported by writing the
// registry to a textfile for the node exporter rather than by serving them.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/blaulicht"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blaulicht"

// Metrics holds the collectors of one run in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	geocodes      *prometheus.CounterVec
	incidents     *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Listing page fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of listing page fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		geocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocodes_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		incidents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_total",
			Help:      "Listing fragments by extraction outcome.",
		}, []string{"outcome"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
	m.registry.MustRegister(m.fetches, m.fetchDuration, m.geocodes, m.incidents, m.lastSuccess)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveIncidents counts extracted and skipped fragments.
func (m *Metrics) ObserveIncidents(extracted, skipped int) {
	m.incidents.WithLabelValues("extracted").Add(float64(extracted))
	m.incidents.WithLabelValues("skipped").Add(float64(skipped))
}

// MarkSuccess records the completion time of a successful run.
func (m *Metrics) MarkSuccess(t time.Time) {
	m.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes the registry in the text exposition format. The file
// is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Ensure InstrumentedFetcher implements blaulicht.Fetcher.
var _ blaulicht.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher counts and times fetches.
type InstrumentedFetcher struct {
	next    blaulicht.Fetcher
	metrics *Metrics
}

// Fetcher wraps next with fetch metrics.
func (m *Metrics) Fetcher(next blaulicht.Fetcher) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	f.metrics.fetchDuration.Observe(time.Since(begin).Seconds())
	if err != nil {
		f.metrics.fetches.WithLabelValues("failure").Inc()
		return "", err
	}
	f.metrics.fetches.WithLabelValues("success").Inc()
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

// Ensure InstrumentedGeocoder implements blaulicht.Geocoder.
var _ blaulicht.Geocoder = (*InstrumentedGeocoder)(nil)

// InstrumentedGeocoder counts lookups by outcome.
type InstrumentedGeocoder struct {
	next    blaulicht.Geocoder
	metrics *Metrics
}

// Geocoder wraps next with geocoding metrics.
func (m *Metrics) Geocoder(next blaulicht.Geocoder) *InstrumentedGeocoder {
	return &InstrumentedGeocoder{next: next, metrics: m}
}

// Geocode delegates to the wrapped geocoder.
func (g *InstrumentedGeocoder) Geocode(ctx context.Context, location string) blaulicht.GeocodeResult {
	result := g.next.Geocode(ctx, location)
	outcome := "unresolved"
	if result.Resolved {
		outcome = "resolved"
	}
	g.metrics.geocodes.WithLabelValues(outcome).Inc()
	return result
}
