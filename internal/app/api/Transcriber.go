package api

import (
	"context"

	"whisper-transcribe/internal/app/model"
)

// ProgressFunc receives transcription progress in percent (0-100).
type ProgressFunc func(percent int)

// TranscribeOptions are per-call options for Model.Transcribe.
type TranscribeOptions struct {
	// Language is an ISO 639-1 code or "auto".
	Language string
	// Progress may be nil. Engines that cannot report progress never call it.
	Progress ProgressFunc
}

// Engine loads recognition models by size label.
type Engine interface {
	Name() string
	Load(ctx context.Context, size model.ModelSize) (Model, error)
}

// Model is a loaded recognition model.
//
// Transcribe must return an error satisfying errors.Is(err, fs.ErrNotExist)
// when inputFilePath does not exist.
type Model interface {
	Transcribe(ctx context.Context, inputFilePath string, opts TranscribeOptions) (*model.TranscriptionResult, error)
	Close() error
}
