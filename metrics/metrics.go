// Package metrics exposes the pipeline's Prometheus collectors. The
// collectors implement ingest.Recorder, so serve mode wires them straight
// into the pipeline; batch runs use plain counters and never start a
// server.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// Default returns the process-wide recorder. The record-ingester component
// counts into it and serve mode scrapes it; batch runs never touch it.
func Default() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewRecorder()
	})
	return defaultRecorder
}

// Recorder counts pipeline progress into Prometheus collectors, labeled by
// source.
type Recorder struct {
	registry *prometheus.Registry

	rowsRead     *prometheus.CounterVec
	rowsSkipped  *prometheus.CounterVec
	entities     *prometheus.CounterVec
	associations *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runSeconds   *prometheus.HistogramVec
}

// NewRecorder builds collectors on a dedicated registry, keeping the
// default registry's Go runtime collectors out of the scrape.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		rowsRead: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biograph_rows_read_total",
			Help: "Data rows read from source files.",
		}, []string{"source"}),
		rowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biograph_rows_skipped_total",
			Help: "Rows skipped as unusable.",
		}, []string{"source"}),
		entities: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biograph_entities_emitted_total",
			Help: "Entities emitted to the graph sink.",
		}, []string{"source"}),
		associations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biograph_associations_emitted_total",
			Help: "Associations emitted to the graph sink.",
		}, []string{"source"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biograph_runs_completed_total",
			Help: "Pipeline runs completed.",
		}, []string{"source", "status"}),
		runSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "biograph_run_duration_seconds",
			Help:    "Wall-clock duration of pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		}, []string{"source"}),
	}
}

// RowRead implements ingest.Recorder.
func (r *Recorder) RowRead(source string) {
	r.rowsRead.WithLabelValues(source).Inc()
}

// RowSkipped implements ingest.Recorder.
func (r *Recorder) RowSkipped(source string) {
	r.rowsSkipped.WithLabelValues(source).Inc()
}

// EntityEmitted implements ingest.Recorder.
func (r *Recorder) EntityEmitted(source string) {
	r.entities.WithLabelValues(source).Inc()
}

// AssociationEmitted implements ingest.Recorder.
func (r *Recorder) AssociationEmitted(source string) {
	r.associations.WithLabelValues(source).Inc()
}

// RunCompleted records one finished run: its source, outcome, and
// duration in seconds.
func (r *Recorder) RunCompleted(source string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.runs.WithLabelValues(source, status).Inc()
	r.runSeconds.WithLabelValues(source).Observe(seconds)
}

// Handler returns the scrape endpoint for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
