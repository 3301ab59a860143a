package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRun(t *testing.T) {
	m := New()
	m.RecordRun("whisper_cpp", "base", OutcomeSuccess)
	m.RecordRun("whisper_cpp", "base", OutcomeSuccess)
	m.RecordRun("openai", "small", "model_load")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues("whisper_cpp", "base", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("openai", "small", "model_load")))
}

func TestRecordTranscript(t *testing.T) {
	m := New()
	at := time.Unix(1_790_000_000, 0)
	m.RecordTranscript(128, at)

	assert.Equal(t, 128.0, testutil.ToFloat64(m.transcriptBytes))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.lastSuccess))
}

func TestObserveStage(t *testing.T) {
	m := New()
	m.ObserveStage(StageTranscribe, 2*time.Second)
	m.ObserveStage(StageWrite, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.stageDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RecordRun("whisper_cpp", "base", OutcomeSuccess)
	m.ObserveStage(StageModelLoad, 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "transcribe.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `transcribe_runs_total{engine="whisper_cpp",model="base",outcome="success"} 1`)
	assert.Contains(t, content, `transcribe_stage_duration_seconds_count{stage="model_load"} 1`)
	assert.True(t, strings.Contains(content, "# HELP transcribe_last_success_timestamp_seconds"))
}
