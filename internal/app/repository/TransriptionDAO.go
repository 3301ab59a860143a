package repository

import (
	"context"

	"whisper-transcribe/internal/app/model"
)

// TranscriptionDAO stores the history of successful transcription runs.
type TranscriptionDAO interface {
	Migrate(ctx context.Context) error

	Save(ctx context.Context, t model.Transcription) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]model.Transcription, error)

	Close() error
}
