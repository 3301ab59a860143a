package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "transcribe"

// Outcome label values besides error kinds.
const OutcomeSuccess = "success"

// Stage label values.
const (
	StageToolCheck  = "tool_check"
	StageModelLoad  = "model_load"
	StageTranscribe = "transcribe"
	StageWrite      = "write"
)

// Metrics collects per-run figures. A CLI run is short-lived, so instead of
// serving /metrics they are flushed to a node_exporter textfile.
type Metrics struct {
	registry        *prometheus.Registry
	runs            *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	transcriptBytes prometheus.Gauge
	lastSuccess     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Transcription runs by engine, model size and outcome.",
		}, []string{"engine", "model", "outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"stage"}),
		transcriptBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_transcript_bytes",
			Help:      "Size of the most recently written transcript.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the most recent successful run.",
		}),
	}
	m.registry.MustRegister(m.runs, m.stageDuration, m.transcriptBytes, m.lastSuccess)
	return m
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) RecordRun(engine, model, outcome string) {
	m.runs.WithLabelValues(engine, model, outcome).Inc()
}

func (m *Metrics) RecordTranscript(bytes int, at time.Time) {
	m.transcriptBytes.Set(float64(bytes))
	m.lastSuccess.Set(float64(at.Unix()))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically writes all metrics to path in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
