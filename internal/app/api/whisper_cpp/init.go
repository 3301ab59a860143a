package whisper_cpp

import (
	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/api/provider"
	"whisper-transcribe/internal/app/audio"
	"whisper-transcribe/internal/config"
)

func init() {
	provider.Register(EngineName, createWhisperCppEngine)
}

func createWhisperCppEngine(cfg *config.Config, logger *zap.Logger) (api.Engine, error) {
	return NewLocalEngine(LocalEngineConfig{
		BinaryPath: cfg.WhisperCpp.BinaryPath,
		ModelsDir:  cfg.WhisperCpp.ModelsDir,
		Threads:    cfg.WhisperCpp.Threads,
		TempDir:    cfg.WhisperCpp.TempDir,
	}, audio.NewTools(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobe), logger), nil
}
