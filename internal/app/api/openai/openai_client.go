package openai

import (
	"github.com/sashabaranov/go-openai"

	"whisper-transcribe/internal/config"
)

// NewClient builds an OpenAI client from configuration. BaseURL allows
// OpenAI-compatible servers such as a local whisper.cpp server.
func NewClient(cfg config.OpenAIConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}
