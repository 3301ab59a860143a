package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path, "no .env file present")

	t.Setenv("TRANSCRIBE_TEST_EXISTING", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("TRANSCRIBE_TEST_FROM_FILE=hello\nTRANSCRIBE_TEST_EXISTING=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TRANSCRIBE_TEST_FROM_FILE") })

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "hello", os.Getenv("TRANSCRIBE_TEST_FROM_FILE"))
	assert.Equal(t, "from-env", os.Getenv("TRANSCRIBE_TEST_EXISTING"), "existing variables win")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WHISPER_CPP_BINARY", "/opt/whisper/whisper-cli")
	t.Setenv("WHISPER_CPP_MODELS_DIR", "/opt/whisper/models")
	t.Setenv("FFMPEG_BINARY", "/usr/local/bin/ffmpeg")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("TRANSCRIBE_ENGINE", "")

	cfg := Default()
	applyEnv(cfg)

	assert.Equal(t, "/opt/whisper/whisper-cli", cfg.WhisperCpp.BinaryPath)
	assert.Equal(t, "/opt/whisper/models", cfg.WhisperCpp.ModelsDir)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpeg.Binary)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "whisper_cpp", cfg.Engine, "empty variables are ignored")
}

func TestApplyEnv_APIKeyFromFileWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := Default()
	cfg.OpenAI.APIKey = "sk-file"
	applyEnv(cfg)

	assert.Equal(t, "sk-file", cfg.OpenAI.APIKey)
}
