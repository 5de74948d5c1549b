package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds all Prometheus metrics of one run
type Metrics struct {
	registry *prometheus.Registry

	// Stage metrics
	StageRuns     *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	// Generator metrics
	SamplesTotal    prometheus.Counter
	SampleSetsSaved prometheus.Counter

	// Renderer metrics
	ArtifactsTotal *prometheus.CounterVec
	ArtifactBytes  *prometheus.HistogramVec

	// Goodness of fit, per sample count
	Correlation  *prometheus.GaugeVec
	MaxDeviation *prometheus.GaugeVec

	// Run metrics
	RunStart prometheus.Gauge
	RunTime  prometheus.Gauge
	start    time.Time

	// Snapshot for the run summary
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the run summary
type Snapshot struct {
	Samples    int64
	SampleSets int64
	Artifacts  int64
	Bytes      int64
	Errors     int64
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		start:    time.Now(),

		// Stage metrics
		StageRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qqplot_stage_runs_total",
				Help: "Total number of pipeline stage executions",
			},
			[]string{"stage", "status"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qqplot_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"stage"},
		),

		// Generator metrics
		SamplesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qqplot_samples_total",
				Help: "Total number of normal samples drawn",
			},
		),
		SampleSetsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qqplot_sample_sets_saved_total",
				Help: "Total number of sample sets written to the raw store",
			},
		),

		// Renderer metrics
		ArtifactsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qqplot_artifacts_total",
				Help: "Total number of plot files written",
			},
			[]string{"format"},
		),
		ArtifactBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qqplot_artifact_size_bytes",
				Help:    "Plot file size in bytes",
				Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"format"},
		),

		// Goodness of fit
		Correlation: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qqplot_correlation",
				Help: "Pearson correlation of theoretical and sample quantiles",
			},
			[]string{"n"},
		),
		MaxDeviation: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qqplot_max_deviation",
				Help: "Largest absolute distance of a point from the reference line",
			},
			[]string{"n"},
		),

		// Run metrics
		RunStart: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "qqplot_run_start_timestamp_seconds",
				Help: "Unix time the run started",
			},
		),
		RunTime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "qqplot_run_duration_seconds",
				Help: "Wall time of the run in seconds",
			},
		),
	}

	m.RunStart.Set(float64(m.start.UnixNano()) / 1e9)
	return m
}

// RecordStage records one stage execution
func (m *Metrics) RecordStage(stage, status string, duration time.Duration) {
	m.StageRuns.WithLabelValues(stage, status).Inc()
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())

	if status == StatusError {
		m.mu.Lock()
		m.snapshot.Errors++
		m.mu.Unlock()
	}
}

// RecordSamples records n drawn samples
func (m *Metrics) RecordSamples(n int) {
	m.SamplesTotal.Add(float64(n))
	m.mu.Lock()
	m.snapshot.Samples += int64(n)
	m.mu.Unlock()
}

// IncSampleSetsSaved increments the stored sample set counter
func (m *Metrics) IncSampleSetsSaved() {
	m.SampleSetsSaved.Inc()
	m.mu.Lock()
	m.snapshot.SampleSets++
	m.mu.Unlock()
}

// RecordArtifact records a written plot file
func (m *Metrics) RecordArtifact(format string, size int64) {
	m.ArtifactsTotal.WithLabelValues(format).Inc()
	m.ArtifactBytes.WithLabelValues(format).Observe(float64(size))
	m.mu.Lock()
	m.snapshot.Artifacts++
	m.snapshot.Bytes += size
	m.mu.Unlock()
}

// ObserveSampleSet records the goodness of fit of the sample set for n
func (m *Metrics) ObserveSampleSet(n int, correlation, maxDeviation float64) {
	label := strconv.Itoa(n)
	m.Correlation.WithLabelValues(label).Set(correlation)
	m.MaxDeviation.WithLabelValues(label).Set(maxDeviation)
}

// Snapshot returns the current summary values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Elapsed returns the time since the collector was created
func (m *Metrics) Elapsed() time.Duration {
	return time.Since(m.start)
}

// WriteTextfile stamps the run duration and writes all metrics to path in
// the Prometheus text format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	m.RunTime.Set(m.Elapsed().Seconds())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
