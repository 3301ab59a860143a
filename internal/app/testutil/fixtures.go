package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleTranscript contains CRLF, a trailing newline and non-ASCII text so
// verbatim writes can be checked byte for byte.
const SampleTranscript = "Hello world.\r\nSecond line, café.\n"

// WriteAudioFixture creates a small placeholder audio file in a temp dir.
func WriteAudioFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF----WAVEfmt "), 0o644))
	return path
}

// Chdir switches to a fresh temp dir for the rest of the test.
func Chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}
