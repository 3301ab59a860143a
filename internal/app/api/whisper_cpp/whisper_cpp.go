package whisper_cpp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/audio"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/app/util/files"
)

const EngineName = "whisper_cpp"

// stderrTailLines is how much whisper.cpp stderr is kept for error messages.
const stderrTailLines = 20

// maxStderrLine bounds a single stderr line.
const maxStderrLine = 1024 * 1024

var progressPattern = regexp.MustCompile(`progress\s*=\s*(\d+)%`)

// LocalEngineConfig locates the whisper.cpp binary and its ggml models.
type LocalEngineConfig struct {
	BinaryPath string
	ModelsDir  string
	Threads    int
	TempDir    string
}

// LocalEngine loads whisper.cpp ggml models from a models directory.
type LocalEngine struct {
	config LocalEngineConfig
	tools  *audio.Tools
	logger *zap.Logger
}

// NewLocalEngine creates a new instance of LocalEngine.
func NewLocalEngine(config LocalEngineConfig, tools *audio.Tools, logger *zap.Logger) *LocalEngine {
	return &LocalEngine{config: config, tools: tools, logger: logger}
}

func (e *LocalEngine) Name() string {
	return EngineName
}

// ModelFileName is the ggml weight file name whisper.cpp publishes for size.
func ModelFileName(size model.ModelSize) string {
	return "ggml-" + size.Canonical().String() + ".bin"
}

// ModelPath returns where the weights for size are expected.
func (e *LocalEngine) ModelPath(size model.ModelSize) string {
	return filepath.Join(e.config.ModelsDir, ModelFileName(size))
}

// Load resolves the binary and the model weights. Nothing is read into memory;
// whisper.cpp loads the weights itself on every run.
func (e *LocalEngine) Load(ctx context.Context, size model.ModelSize) (api.Model, error) {
	binaryPath, err := exec.LookPath(e.config.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp binary %q not found (set WHISPER_CPP_BINARY): %w", e.config.BinaryPath, err)
	}

	modelPath := e.ModelPath(size)
	info, err := os.Stat(modelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("model file %s not found; download it with whisper.cpp's models/download-ggml-model.sh %s",
				modelPath, size.Canonical())
		}
		return nil, fmt.Errorf("stat model file: %w", err)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, fmt.Errorf("model file %s is empty or not a regular file", modelPath)
	}

	e.logger.Debug("whisper.cpp model resolved",
		zap.String("binary", binaryPath),
		zap.String("model", modelPath),
		zap.Int64("bytes", info.Size()))

	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		threads:    e.config.Threads,
		tempDir:    e.config.TempDir,
		tools:      e.tools,
		logger:     e.logger,
	}, nil
}

// LocalTranscriber runs the whisper.cpp binary with one resolved model.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	threads    int
	tempDir    string
	tools      *audio.Tools
	logger     *zap.Logger
}

// Transcribe decodes inputFilePath to 16kHz mono WAV if needed, runs whisper.cpp and returns the text it produced.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath string, opts api.TranscribeOptions) (*model.TranscriptionResult, error) {
	startTime := time.Now()

	if _, err := os.Stat(inputFilePath); err != nil {
		return nil, fmt.Errorf("input file %s: %w", inputFilePath, err)
	}

	workDir, err := os.MkdirTemp(lt.tempDir, "whisper_cpp_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(workDir)

	wavPath, err := lt.prepareInput(ctx, inputFilePath, workDir)
	if err != nil {
		return nil, err
	}

	language := opts.Language
	if language == "" {
		language = "auto"
	}
	outputBase := filepath.Join(workDir, "transcript")
	args := lt.buildArgs(wavPath, outputBase, language)

	lt.logger.Debug("running whisper.cpp",
		zap.String("command", lt.binaryPath+" "+strings.Join(args, " ")))

	if err := lt.run(ctx, args, opts.Progress); err != nil {
		return nil, err
	}

	text, err := files.ReadOutputFile(outputBase + ".txt")
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp produced no transcript: %v", err)
	}

	return &model.TranscriptionResult{
		Text:      text,
		Language:  language,
		Duration:  time.Since(startTime),
		ModelUsed: filepath.Base(lt.modelPath),
		Engine:    EngineName,
	}, nil
}

func (lt *LocalTranscriber) Close() error {
	return nil
}

func (lt *LocalTranscriber) prepareInput(ctx context.Context, inputFilePath, workDir string) (string, error) {
	is16kHzWav, err := lt.tools.Is16kHzWavFile(ctx, inputFilePath)
	if err != nil {
		lt.logger.Debug("ffprobe failed, converting unconditionally", zap.Error(err))
	}
	if is16kHzWav {
		return inputFilePath, nil
	}

	wavPath := filepath.Join(workDir, "input_16khz.wav")
	if err := lt.tools.ConvertTo16kHzWav(ctx, inputFilePath, wavPath); err != nil {
		return "", fmt.Errorf("error converting input file: %w", err)
	}
	lt.logger.Debug("converted input to 16kHz WAV", zap.String("wav", wavPath))
	return wavPath, nil
}

func (lt *LocalTranscriber) buildArgs(wavPath, outputBase, language string) []string {
	args := []string{
		"-m", lt.modelPath,
		"-l", language,
		"-f", wavPath,
		"-otxt",
		"-of", outputBase,
		"-pp",
	}
	if lt.threads > 0 {
		args = append(args, "-t", strconv.Itoa(lt.threads))
	}
	return args
}

func (lt *LocalTranscriber) run(ctx context.Context, args []string, progress api.ProgressFunc) error {
	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	command.Stdout = io.Discard
	stderr, err := command.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := command.Start(); err != nil {
		return fmt.Errorf("command execution error: %w", err)
	}

	tail := scanStderr(stderr, progress)

	if err := command.Wait(); err != nil {
		return fmt.Errorf("command execution error: %w, stderr: %s", err, strings.Join(tail, "\n"))
	}
	return nil
}

// scanStderr forwards progress lines to progress and returns the last
// stderrTailLines other lines. It returns when stderr is closed.
func scanStderr(r io.Reader, progress api.ProgressFunc) []string {
	var tail []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStderrLine)
	for scanner.Scan() {
		line := scanner.Text()
		if percent, ok := parseProgress(line); ok {
			if progress != nil {
				progress(percent)
			}
			continue
		}
		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		// Keep draining so whisper.cpp never blocks on a full pipe.
		tail = append(tail, "(stderr scan stopped: "+err.Error()+")")
		_, _ = io.Copy(io.Discard, r)
	}
	return tail
}

func parseProgress(line string) (int, bool) {
	m := progressPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	percent, err := strconv.Atoi(m[1])
	if err != nil || percent > 100 {
		return 0, false
	}
	return percent, true
}
