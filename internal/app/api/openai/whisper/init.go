package whisper

import (
	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	openaiclient "whisper-transcribe/internal/app/api/openai"
	"whisper-transcribe/internal/app/api/provider"
	"whisper-transcribe/internal/config"
)

func init() {
	provider.Register(EngineName, createOpenAIEngine)
}

func createOpenAIEngine(cfg *config.Config, logger *zap.Logger) (api.Engine, error) {
	client := openaiclient.NewClient(cfg.OpenAI)
	// OpenAI-compatible servers behind base_url may not need a key.
	authorized := cfg.OpenAI.APIKey != "" || cfg.OpenAI.BaseURL != ""
	return NewRemoteEngine(client, cfg.OpenAI.Model, authorized, logger), nil
}
