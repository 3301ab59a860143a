package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/api/provider"
	"whisper-transcribe/internal/app/audio"
	"whisper-transcribe/internal/app/converter"
	"whisper-transcribe/internal/app/repository"
	"whisper-transcribe/internal/app/repository/pg"
	"whisper-transcribe/internal/app/repository/sqlite"
	"whisper-transcribe/internal/config"
)

// Options carries what the command line decided for one run.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Progress enables the progress bar, drawn on ProgressOutput.
	Progress       bool
	ProgressOutput io.Writer
	// Status receives the per-stage status lines.
	Status io.Writer
}

func provideConfig(opts Options) *config.Config {
	if opts.Config == nil {
		return config.Default()
	}
	return opts.Config
}

func provideLogger(opts Options) *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

func provideAudioTools(cfg *config.Config) *audio.Tools {
	return audio.NewTools(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobe)
}

func provideEngine(cfg *config.Config, logger *zap.Logger) (api.Engine, error) {
	return provider.New(cfg.Engine, cfg, logger)
}

func provideProgress(opts Options) *converter.ProgressManager {
	return converter.NewProgressManager(converter.ProgressConfig{
		Enabled: opts.Progress,
		Writer:  opts.ProgressOutput,
	})
}

func provideSettings(cfg *config.Config, opts Options) converter.Settings {
	return converter.Settings{OutputDir: cfg.OutputDir, Status: opts.Status}
}

// provideHistory opens and migrates the configured history store. It
// returns a nil DAO when history is disabled.
func provideHistory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TranscriptionDAO, error) {
	var (
		dao repository.TranscriptionDAO
		err error
	)
	switch cfg.History.Driver {
	case "":
		return nil, nil
	case "sqlite3":
		dao, err = sqlite.NewSQLiteDB(cfg.History.DSN)
	case "postgres":
		dao, err = pg.NewPostgresDB(cfg.History.DSN)
	default:
		return nil, fmt.Errorf("unsupported history driver '%s'", cfg.History.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s history store: %w", cfg.History.Driver, err)
	}

	if err := dao.Migrate(ctx); err != nil {
		_ = dao.Close()
		return nil, fmt.Errorf("migrate %s history store: %w", cfg.History.Driver, err)
	}
	logger.Debug("history store ready", zap.String("driver", cfg.History.Driver))
	return dao, nil
}
