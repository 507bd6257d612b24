// Package metrics holds the per-run Prometheus metrics.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one batch run.
type Metrics struct {
	registry *prometheus.Registry

	JobsTotal      *prometheus.CounterVec
	AttemptsTotal  prometheus.Counter
	MalformedTotal prometheus.Counter
	JobDuration    prometheus.Histogram
}

// NewMetrics registers metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		JobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ytbatch_jobs_total",
			Help: "The total number of jobs finished, by status",
		}, []string{"status"}), // success, failed, skipped
		AttemptsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ytbatch_download_attempts_total",
			Help: "The total number of download attempts, retries included",
		}),
		MalformedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ytbatch_malformed_rows_total",
			Help: "The total number of CSV rows skipped as malformed",
		}),
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ytbatch_job_duration_seconds",
			Help:    "Duration of jobs, retries included",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}

// Registry returns the backing registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncAttempt counts one downloader invocation.
func (m *Metrics) IncAttempt() {
	m.AttemptsTotal.Inc()
}

// IncMalformed counts one skipped row.
func (m *Metrics) IncMalformed() {
	m.MalformedTotal.Inc()
}

// ObserveOutcome records a finished job.
func (m *Metrics) ObserveOutcome(o *models.Outcome) {
	m.JobsTotal.WithLabelValues(string(o.Status)).Inc()
	if d := o.Duration(); d > 0 {
		m.JobDuration.Observe(d.Seconds())
	}
}

// WriteTextfile writes the metrics in text exposition format, for the node
// exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
			return fmt.Errorf("failed to create metrics directory %q: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
