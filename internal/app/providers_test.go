package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/config"
)

func TestProvideHistory_Disabled(t *testing.T) {
	dao, err := provideHistory(context.Background(), config.Default(), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, dao)
}

func TestProvideHistory_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.History.Driver = "sqlite3"
	cfg.History.DSN = filepath.Join(t.TempDir(), "data", "history.db")

	dao, err := provideHistory(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, dao)
	defer dao.Close()

	record := model.Transcription{ID: "run-1", InputPath: "a.mp3", OutputPath: "text/a.txt",
		Model: "base", Engine: "whisper_cpp", CreatedAt: time.Now()}
	require.NoError(t, dao.Save(context.Background(), record))

	recent, err := dao.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "run-1", recent[0].ID)
}

func TestProvideHistory_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.History.Driver = "mysql"
	cfg.History.DSN = "x"

	_, err := provideHistory(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported history driver 'mysql'")
}

func TestInitializeConverter_UnknownEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = "does-not-exist"

	_, err := InitializeConverter(context.Background(), Options{Config: cfg})
	assert.ErrorContains(t, err, "engine 'does-not-exist' not registered")
}

func TestProvideSettings(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "transcripts"

	settings := provideSettings(cfg, Options{})
	assert.Equal(t, "transcripts", settings.OutputDir)
}
