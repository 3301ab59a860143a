package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "whisper-transcribe/internal/app/errors"
	"whisper-transcribe/internal/app/model"
)

const (
	DefaultFFmpegBinary  = "ffmpeg"
	DefaultFFprobeBinary = "ffprobe"
)

// InstallHints are printed when ffmpeg cannot be found.
var InstallHints = []string{
	"Speech recognition needs ffmpeg to decode audio. Please install it.",
	"Installation (examples):",
	"  - macOS (Homebrew): brew install ffmpeg",
	"  - Ubuntu/Debian: sudo apt update && sudo apt install ffmpeg",
}

// Tools runs ffmpeg and ffprobe.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// NewTools returns Tools using the given binaries, falling back to the PATH defaults.
func NewTools(ffmpeg, ffprobe string) *Tools {
	if ffmpeg == "" {
		ffmpeg = DefaultFFmpegBinary
	}
	if ffprobe == "" {
		ffprobe = DefaultFFprobeBinary
	}
	return &Tools{FFmpeg: ffmpeg, FFprobe: ffprobe}
}

// Check verifies that ffmpeg is reachable by running `ffmpeg -version`.
func (t *Tools) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.FFmpeg, "-version")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return apperrors.Wrapf(err, apperrors.KindToolNotFound,
			"%s is not installed or not on PATH", t.FFmpeg).WithHints(InstallHints...)
	}
	return apperrors.Wrapf(err, apperrors.KindToolExecution,
		"a problem occurred while running %s (stderr: %s)", t.FFmpeg, strings.TrimSpace(stderr.String()))
}

// Probe runs ffprobe on filePath and decodes its JSON output.
func (t *Tools) Probe(ctx context.Context, filePath string) (*model.FFProbeOutput, error) {
	cmd := exec.CommandContext(ctx, t.FFprobe, "-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", filePath)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", filePath, err)
	}
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &probeOutput, nil
}

// Duration returns the container duration reported by ffprobe.
func (t *Tools) Duration(ctx context.Context, filePath string) (time.Duration, error) {
	probe, err := t.Probe(ctx, filePath)
	if err != nil {
		return 0, err
	}
	return parseDuration(probe.Format.Duration)
}

// Is16kHzWavFile reports whether filePath already is 16kHz mono PCM, the input whisper.cpp expects.
func (t *Tools) Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	probe, err := t.Probe(ctx, filePath)
	if err != nil {
		return false, err
	}
	return is16kHzMonoPCM(probe), nil
}

// ConvertTo16kHzWav decodes inputPath into a 16kHz mono PCM WAV at outputPath.
func (t *Tools) ConvertTo16kHzWav(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, t.FFmpeg, "-y", "-i", inputPath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %w, stderr: %s", err, lastLines(stderr.String(), 5))
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func is16kHzMonoPCM(probe *model.FFProbeOutput) bool {
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" &&
			stream.SampleRate == 16000 && stream.Channels == 1 {
			return true
		}
	}
	return false
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
