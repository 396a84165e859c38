package cleanup

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for cleanup passes.
//
// The job has no HTTP listener, so the registry is written to a node-exporter
// textfile after every pass when a path is configured.
type Metrics struct {
	registry *prometheus.Registry
	textfile string
	logger   *slog.Logger

	runs          *prometheus.CounterVec
	videosRemoved prometheus.Counter
	filesDeleted  prometheus.Counter
	filesSkipped  *prometheus.CounterVec
	lastRun       prometheus.Gauge
	lastSuccess   prometheus.Gauge
	retentionDays prometheus.Gauge
	expiredVideos prometheus.Gauge
	runDuration   prometheus.Histogram
}

// MetricsConfig configures Metrics.
type MetricsConfig struct {
	// Namespace is the metric name prefix.
	// Default: "safetube"
	Namespace string

	// TextfilePath is where the registry is written after each pass.
	// Empty disables writing.
	TextfilePath string
}

// NewMetrics creates cleanup metrics registered on registry. If registry is
// nil a private registry is created.
func NewMetrics(cfg MetricsConfig, registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "safetube"
	}
	const subsystem = "cleanup"

	m := &Metrics{
		registry: registry,
		textfile: cfg.TextfilePath,
		logger:   slog.Default().With("component", "cleanup.metrics"),

		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of cleanup passes by result",
			},
			[]string{"result"},
		),
		videosRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "videos_removed_total",
			Help:      "Total number of video records removed and committed",
		}),
		filesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_deleted_total",
			Help:      "Total number of media files deleted",
		}),
		filesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "files_skipped_total",
				Help:      "Total number of media paths left alone, by reason",
			},
			[]string{"reason"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last cleanup pass",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful cleanup pass",
		}),
		retentionDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retention_days",
			Help:      "Retention period used by the last cleanup pass",
		}),
		expiredVideos: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "expired_videos",
			Help:      "Expired videos found by the last cleanup pass",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Duration of cleanup passes",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}),
	}

	registry.MustRegister(
		m.runs,
		m.videosRemoved,
		m.filesDeleted,
		m.filesSkipped,
		m.lastRun,
		m.lastSuccess,
		m.retentionDays,
		m.expiredVideos,
		m.runDuration,
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the outcome of one pass.
func (m *Metrics) Observe(report *Report, runErr error) {
	if m == nil || report == nil {
		return
	}

	result := "success"
	if runErr != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()

	m.videosRemoved.Add(float64(report.RecordsRemoved))
	m.filesDeleted.Add(float64(report.FilesDeleted))
	if report.FilesMissing > 0 {
		m.filesSkipped.WithLabelValues("missing").Add(float64(report.FilesMissing))
	}
	if report.FilesRefused > 0 {
		m.filesSkipped.WithLabelValues("refused").Add(float64(report.FilesRefused))
	}

	m.lastRun.Set(float64(report.StartedAt.Unix()))
	if runErr == nil {
		m.lastSuccess.Set(float64(report.StartedAt.Unix()))
	}
	m.retentionDays.Set(float64(report.RetentionDays))
	m.expiredVideos.Set(float64(report.Expired))
	m.runDuration.Observe(report.Duration.Seconds())
}

// Flush writes the registry to the configured textfile. It is a no-op when no
// path is configured. Failures are logged; metrics never fail a pass.
func (m *Metrics) Flush() {
	if m == nil || m.textfile == "" {
		return
	}

	start := time.Now()
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		m.logger.Warn("failed to write metrics textfile",
			"path", m.textfile,
			"error", err,
		)
		return
	}

	m.logger.Debug("metrics textfile written",
		"path", m.textfile,
		"duration", time.Since(start),
	)
}
