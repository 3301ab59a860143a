package errors

import (
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := Wrap(fs.ErrNotExist, KindInputNotFound, "input file 'a.wav' not found")

	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrTranscription)
}

func TestErrorIsThroughFmtWrap(t *testing.T) {
	inner := New(KindModelLoad, "model file missing")
	err := fmt.Errorf("loading: %w", inner)

	assert.ErrorIs(t, err, ErrModelLoad)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindModelLoad, kind)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindOutputWrite, "x"))
	assert.Nil(t, Wrapf(nil, KindOutputWrite, "x %d", 1))
}

func TestErrorMessage(t *testing.T) {
	err := Wrapf(fmt.Errorf("permission denied"), KindOutputWrite, "failed to write '%s'", "out.txt")
	assert.Equal(t, "failed to write 'out.txt': permission denied", err.Error())
	assert.Equal(t, "plain", New(KindTranscription, "plain").Error())
}

func TestWithHintsDoesNotMutate(t *testing.T) {
	base := New(KindToolNotFound, "ffmpeg not found")
	hinted := base.WithHints("brew install ffmpeg")

	assert.Empty(t, base.Hints())
	assert.Equal(t, []string{"brew install ffmpeg"}, hinted.Hints())
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := New(KindToolNotFound, "ffmpeg is not installed").WithHints("hint one", "hint two")

	Report(&buf, fmt.Errorf("check: %w", err))

	assert.Equal(t, "Error: check: ffmpeg is not installed\n  hint one\n  hint two\n", buf.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(ErrOutputWrite))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("usage")))
}
