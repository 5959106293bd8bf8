// Package metrics exposes run statistics in the Prometheus text format so a
// node exporter textfile collector can pick them up after each run.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the metrics of a single run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	FilesTotal          *prometheus.CounterVec
	LastRunStatus       prometheus.Gauge
	LastRunTimestamp    prometheus.Gauge
	LastRunDuration     prometheus.Gauge
	LastRunFilesScanned prometheus.Gauge
	LastRunInfo         *prometheus.GaugeVec
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		FilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "removecrud_files_total",
				Help: "Number of files processed in the last run, by outcome",
			},
			[]string{"outcome"},
		),

		LastRunStatus: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "removecrud_last_run_status",
				Help: "Exit status of the last run (90 ok, 91 error, 93 directory not found, 94 disabled)",
			},
		),

		LastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "removecrud_last_run_timestamp_seconds",
				Help: "Unix timestamp of the last run",
			},
		),

		LastRunDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "removecrud_last_run_duration_seconds",
				Help: "Duration of the last run in seconds",
			},
		),

		LastRunFilesScanned: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "removecrud_last_run_files_scanned",
				Help: "Number of supported files found by the last scan",
			},
		),

		LastRunInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "removecrud_last_run_info",
				Help: "Information about the last run",
			},
			[]string{"category", "status_code"},
		),
	}
}

// ObserveFile counts one file outcome.
func (r *Recorder) ObserveFile(outcome string) {
	r.FilesTotal.WithLabelValues(outcome).Inc()
}

// ObserveScan records how many files the scan found.
func (r *Recorder) ObserveScan(count int) {
	r.LastRunFilesScanned.Set(float64(count))
}

// ObserveRun records the end of a run.
func (r *Recorder) ObserveRun(status int, statusCode, category string, started time.Time, duration time.Duration) {
	r.LastRunStatus.Set(float64(status))
	r.LastRunTimestamp.Set(float64(started.Unix()))
	r.LastRunDuration.Set(duration.Seconds())
	r.LastRunInfo.WithLabelValues(category, statusCode).Set(1)
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return errors.WithStack(prometheus.WriteToTextfile(path, r.registry))
}
