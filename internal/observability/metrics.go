package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"urban-heatmap/internal/dataset"
)

// Metrics holds the Prometheus gauges and counters for the dashboard.
type Metrics struct {
	registry *prometheus.Registry

	CountriesJoined prometheus.Gauge
	JoinGaps        *prometheus.CounterVec // labels: side={table,boundary}
	Projections     *prometheus.CounterVec // labels: season, time
	BadSelections   prometheus.Counter
}

// NewMetrics creates all dashboard metrics on a fresh registry, so
// tests can build as many instances as they like.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CountriesJoined: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "urban_heatmap",
			Name:      "countries_joined",
			Help:      "Countries present in both the ΔT table and the boundary file.",
		}),
		JoinGaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "urban_heatmap",
			Name:      "join_gaps_total",
			Help:      "Identifiers dropped from the join because one source lacked them.",
		}, []string{"side"}),
		Projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "urban_heatmap",
			Name:      "projection_requests_total",
			Help:      "Value-map requests served, by season and time of day.",
		}, []string{"season", "time"}),
		BadSelections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "urban_heatmap",
			Name:      "bad_selection_requests_total",
			Help:      "Value-map requests rejected for an unknown season or time.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.CountriesJoined,
		m.JoinGaps,
		m.Projections,
		m.BadSelections,
	)

	return m
}

// RecordJoin publishes the outcome of the one-time index build.
func (m *Metrics) RecordJoin(stats dataset.JoinStats) {
	m.CountriesJoined.Set(float64(stats.Joined))
	m.JoinGaps.WithLabelValues("table").Add(float64(stats.TableOnly))
	m.JoinGaps.WithLabelValues("boundary").Add(float64(stats.BoundaryOnly))
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
