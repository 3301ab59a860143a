package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable consulted when no --config flag is given.
const ConfigPathEnv = "TRANSCRIBE_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	Engine     string           `yaml:"engine" validate:"required"`
	Language   string           `yaml:"language"`
	OutputDir  string           `yaml:"output_dir" validate:"required"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	WhisperCpp WhisperCppConfig `yaml:"whisper_cpp"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	History    HistoryConfig    `yaml:"history"`
}

type FFmpegConfig struct {
	Binary  string `yaml:"binary" validate:"required"`
	FFprobe string `yaml:"ffprobe" validate:"required"`
}

// WhisperCppConfig configures the local whisper.cpp engine.
type WhisperCppConfig struct {
	BinaryPath string `yaml:"binary_path" validate:"required"`
	ModelsDir  string `yaml:"models_dir" validate:"required"`
	Threads    int    `yaml:"threads" validate:"gte=0,lte=256"`
	TempDir    string `yaml:"temp_dir"`
}

// OpenAIConfig configures the OpenAI transcription engine.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Model   string `yaml:"model"`
}

// MetricsConfig enables writing Prometheus metrics in textfile-collector format.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// HistoryConfig enables recording successful runs in a database.
type HistoryConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=sqlite3 postgres"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine:    "whisper_cpp",
		Language:  "auto",
		OutputDir: "text",
		FFmpeg: FFmpegConfig{
			Binary:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		WhisperCpp: WhisperCppConfig{
			BinaryPath: "whisper-cli",
			ModelsDir:  "models",
		},
		OpenAI: OpenAIConfig{
			Model: "whisper-1",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then environment overrides. ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
