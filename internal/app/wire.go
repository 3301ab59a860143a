//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"whisper-transcribe/internal/app/audio"
	"whisper-transcribe/internal/app/converter"
	"whisper-transcribe/internal/app/metrics"
	"whisper-transcribe/internal/app/repository"
)

// InitializeConverter builds the transcription pipeline for one run.
func InitializeConverter(ctx context.Context, opts Options) (*converter.Converter, error) {
	wire.Build(
		provideConfig,
		provideLogger,
		provideAudioTools,
		wire.Bind(new(converter.AudioTools), new(*audio.Tools)),
		provideEngine,
		provideHistory,
		metrics.New,
		provideProgress,
		provideSettings,
		converter.NewConverter,
	)
	return &converter.Converter{}, nil
}

// InitializeHistory opens the configured history store for read-only commands.
func InitializeHistory(ctx context.Context, opts Options) (repository.TranscriptionDAO, error) {
	wire.Build(provideConfig, provideLogger, provideHistory)
	return nil, nil
}
