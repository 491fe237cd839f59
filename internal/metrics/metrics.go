// Package metrics provides Prometheus metrics for claimdesk.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for claimdesk on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal       *prometheus.CounterVec
	QueryDuration      prometheus.Histogram
	SearchResults      prometheus.Histogram
	DocumentsIngested  *prometheus.CounterVec
	ChunksStored       prometheus.Gauge
	ServerStartSeconds prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claimdesk",
			Name:      "queries_total",
			Help:      "Claim queries processed, by decision.",
		}, []string{"decision"}),
		QueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "claimdesk",
			Name:      "query_duration_seconds",
			Help:      "Time spent in the query pipeline.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		SearchResults: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "claimdesk",
			Name:      "search_results",
			Help:      "Chunks returned per similarity search.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		}),
		DocumentsIngested: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claimdesk",
			Name:      "documents_ingested_total",
			Help:      "Policy documents seen by the ingester, by outcome.",
		}, []string{"status"}),
		ChunksStored: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "claimdesk",
			Name:      "chunks_stored",
			Help:      "Chunks currently held by the chunk store.",
		}),
		ServerStartSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "claimdesk",
			Name:      "server_start_time_seconds",
			Help:      "Unix time the process started serving.",
		}),
	}
	m.ServerStartSeconds.Set(float64(time.Now().Unix()))
	return m
}

// ObserveQuery records one pipeline run.
func (m *Metrics) ObserveQuery(decision string, elapsed time.Duration, results int) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(decision).Inc()
	m.QueryDuration.Observe(elapsed.Seconds())
	m.SearchResults.Observe(float64(results))
}

// ObserveIngest records the outcome of one document ingestion.
func (m *Metrics) ObserveIngest(status string, totalChunks int) {
	if m == nil {
		return
	}
	m.DocumentsIngested.WithLabelValues(status).Inc()
	m.ChunksStored.Set(float64(totalChunks))
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
