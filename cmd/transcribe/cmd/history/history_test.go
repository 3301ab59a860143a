package history

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-transcribe/internal/app/model"
)

func TestPrintRecords(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRecords(&out, []model.Transcription{{
		InputPath:    "talk.mp3",
		OutputPath:   "text/talk.txt",
		Model:        "small",
		Engine:       "whisper_cpp",
		TextLength:   1234,
		ProcessingMs: 65432,
		CreatedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
	}}))

	text := out.String()
	assert.Contains(t, text, "WHEN")
	assert.Regexp(t, `2026-03-01 09:30\s+whisper_cpp\s+small\s+1234\s+1m5\.4s\s+talk\.mp3\s+text/talk\.txt`, text)
}

func TestPrintRecords_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRecords(&out, nil))
	assert.Equal(t, "No transcriptions recorded yet.\n", out.String())
}
