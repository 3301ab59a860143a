package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whisper-transcribe/internal/app"
	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/converter"
	apperrors "whisper-transcribe/internal/app/errors"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/app/testutil"
	"whisper-transcribe/internal/config"
)

type harness struct {
	tools  *testutil.MockAudioTools
	engine *testutil.MockEngine
	model  *testutil.MockModel
	opts   *app.Options
	built  bool
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{config.ConfigPathEnv, "TRANSCRIBE_ENGINE", "OPENAI_API_KEY", "OPENAI_BASE_URL"} {
		t.Setenv(key, "")
	}

	h := &harness{
		tools:  testutil.NewAvailableAudioTools(),
		engine: testutil.NewMockEngine("fake"),
		model:  testutil.NewMockModel(),
	}

	prev := newConverter
	newConverter = func(ctx context.Context, opts app.Options) (*converter.Converter, error) {
		h.built = true
		h.opts = &opts
		return converter.NewConverter(h.tools, h.engine, nil, nil, nil,
			converter.Settings{OutputDir: opts.Config.OutputDir, Status: opts.Status}, opts.Logger), nil
	}
	t.Cleanup(func() { newConverter = prev })
	return h
}

func (h *harness) run(args ...string) int {
	root := newRootCmd()
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return run(context.Background(), root, args)
}

func TestRun_InvalidModelRejectedBeforeAnyWork(t *testing.T) {
	h := newHarness(t)

	code := h.run("--model", "huge", "audio.mp3")

	assert.Equal(t, 1, code)
	assert.False(t, h.built, "no converter may be built for an invalid model")
	assert.Contains(t, h.stderr.String(), `invalid argument "huge"`)
	assert.Contains(t, h.stderr.String(), "large-v3")
}

func TestRun_DefaultOutputPath(t *testing.T) {
	h := newHarness(t)
	dir := testutil.Chdir(t)
	input := testutil.WriteAudioFixture(t, "podcast.m4a")

	h.engine.On("Load", mock.Anything, model.ModelBase).Return(h.model, nil)
	h.model.OnTranscribe(testutil.SampleTranscript, nil)

	code := h.run("--no-progress", input)
	require.Equal(t, 0, code, h.stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "text", "podcast.txt"))
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleTranscript, string(data))
	assert.Contains(t, h.stdout.String(), "Saved result to '"+filepath.Join("text", "podcast.txt")+"'.")
	assert.False(t, h.opts.Progress)
}

func TestRun_ExplicitOutputPath(t *testing.T) {
	h := newHarness(t)
	dir := testutil.Chdir(t)
	input := testutil.WriteAudioFixture(t, "lecture.mp3")
	out := filepath.Join(dir, "notes.txt")

	h.engine.On("Load", mock.Anything, model.ModelSmall).Return(h.model, nil)
	h.model.OnTranscribe("notes", nil)

	code := h.run("-m", "small", "-o", out, input)
	require.Equal(t, 0, code, h.stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "notes", string(data))
	_, err = os.Stat(filepath.Join(dir, "text"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ReportsClassifiedErrorWithHints(t *testing.T) {
	h := newHarness(t)
	testutil.Chdir(t)
	h.tools = &testutil.MockAudioTools{}
	h.tools.On("Check", mock.Anything).Return(
		apperrors.New(apperrors.KindToolNotFound, "ffmpeg was not found on PATH").WithHints("macOS (Homebrew): brew install ffmpeg"))

	code := h.run("audio.mp3")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.stderr.String(), "Error: ffmpeg was not found on PATH")
	assert.Contains(t, h.stderr.String(), "  macOS (Homebrew): brew install ffmpeg")
	assert.NotContains(t, h.stderr.String(), "--help")
	h.engine.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestRun_EngineAndLanguageFlags(t *testing.T) {
	h := newHarness(t)
	testutil.Chdir(t)
	input := testutil.WriteAudioFixture(t, "call.wav")

	h.engine.On("Load", mock.Anything, model.ModelBase).Return(h.model, nil)
	h.model.OnTranscribe("hi", nil)

	code := h.run("-e", "openai", "-l", "en", input)
	require.Equal(t, 0, code, h.stderr.String())
	require.NotNil(t, h.opts)
	assert.Equal(t, "openai", h.opts.Config.Engine)

	require.Len(t, h.model.Calls, 1)
	opts := h.model.Calls[0].Arguments.Get(2).(api.TranscribeOptions)
	assert.Equal(t, "en", opts.Language)
}

func TestRun_RequiresExactlyOneInput(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.run())
	assert.Contains(t, h.stderr.String(), "accepts 1 arg(s), received 0")
	assert.Contains(t, h.stderr.String(), "Run 'transcribe --help' for usage.")
	assert.False(t, h.built)
}

func TestRun_Version(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 0, h.run("version"))
	assert.Regexp(t, `^v\d+\.\d+\.\d+\n$`, h.stdout.String())
}
