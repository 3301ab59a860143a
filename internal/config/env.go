package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envPaths are tried in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
}

// LoadEnv loads variables from the first .env file found in the working directory.
// Variables already present in the environment are not overridden.
// It returns the loaded path, or "" when no file exists.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// applyEnv overrides file values with non-empty environment variables.
func applyEnv(cfg *Config) {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent(&cfg.Engine, "TRANSCRIBE_ENGINE")
	setIfPresent(&cfg.FFmpeg.Binary, "FFMPEG_BINARY")
	setIfPresent(&cfg.FFmpeg.FFprobe, "FFPROBE_BINARY")
	setIfPresent(&cfg.WhisperCpp.BinaryPath, "WHISPER_CPP_BINARY")
	setIfPresent(&cfg.WhisperCpp.ModelsDir, "WHISPER_CPP_MODELS_DIR")
	setIfPresent(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	if cfg.OpenAI.APIKey == "" {
		setIfPresent(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	}
}
