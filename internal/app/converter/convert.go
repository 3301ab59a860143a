package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	apperrors "whisper-transcribe/internal/app/errors"
	"whisper-transcribe/internal/app/metrics"
	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/app/repository"
	"whisper-transcribe/internal/app/util/files"
)

// ModelLoadHint is attached to every model load failure.
const ModelLoadHint = "Check that the model size is valid and that the model files were downloaded correctly."

// AudioTools is the part of the decoding tool the converter needs.
type AudioTools interface {
	Check(ctx context.Context) error
	Duration(ctx context.Context, filePath string) (time.Duration, error)
}

// Settings are the converter options that do not come from a collaborator.
type Settings struct {
	// OutputDir receives <stem>.txt when no explicit output path is given.
	OutputDir string
	// Status receives one line per pipeline stage. Nil discards them.
	Status io.Writer
}

// Converter runs the transcription pipeline for one request:
// tool check, model load, transcription, output resolution, write.
type Converter struct {
	tools    AudioTools
	engine   api.Engine
	history  repository.TranscriptionDAO
	metrics  *metrics.Metrics
	progress *ProgressManager
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

// NewConverter wires a converter. history may be nil; nil metrics, progress
// or logger are replaced with inert ones.
func NewConverter(tools AudioTools, engine api.Engine, history repository.TranscriptionDAO,
	m *metrics.Metrics, progress *ProgressManager, settings Settings, logger *zap.Logger) *Converter {
	if m == nil {
		m = metrics.New()
	}
	if progress == nil {
		progress = NewProgressManager(ProgressConfig{Enabled: false})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.Status == nil {
		settings.Status = io.Discard
	}
	if settings.OutputDir == "" {
		settings.OutputDir = "text"
	}
	return &Converter{
		tools:    tools,
		engine:   engine,
		history:  history,
		metrics:  m,
		progress: progress,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Close releases the history store and stops the progress renderer.
func (c *Converter) Close() error {
	c.progress.Shutdown()
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}

// Metrics returns the collector updated by Transcribe.
func (c *Converter) Metrics() *metrics.Metrics {
	return c.metrics
}

// Transcribe runs the pipeline and returns the path of the written transcript.
// Every failure is an *apperrors.Error of the matching kind, except an
// invalid request, which is returned as is.
func (c *Converter) Transcribe(ctx context.Context, req model.TranscriptionRequest) (outputPath string, err error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}

	runStart := c.now()
	logger := c.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("engine", c.engine.Name()),
		zap.String("model", req.Model.String()),
		zap.String("input", req.InputPath))

	defer func() {
		outcome := metrics.OutcomeSuccess
		if kind, ok := apperrors.KindOf(err); ok {
			outcome = string(kind)
		} else if err != nil {
			outcome = "error"
		}
		c.metrics.RecordRun(c.engine.Name(), req.Model.String(), outcome)
		logger.Debug("run finished", zap.String("outcome", outcome), zap.Duration("elapsed", c.now().Sub(runStart)))
	}()

	if err := c.checkTools(ctx); err != nil {
		return "", err
	}

	c.status("Loading %s model '%s'...", c.engine.Name(), req.Model)
	recognizer, err := c.loadModel(ctx, req.Model)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := recognizer.Close(); cerr != nil {
			logger.Warn("failed to release model", zap.Error(cerr))
		}
	}()

	c.status("Transcribing '%s'...", req.InputPath)
	result, err := c.transcribe(ctx, recognizer, req)
	if err != nil {
		return "", err
	}
	c.status("Transcription finished.")

	outputPath, err = c.write(req, result.Text)
	if err != nil {
		return "", err
	}
	c.status("Saved result to '%s'.", outputPath)

	finished := c.now()
	c.metrics.RecordTranscript(len(result.Text), finished)
	c.recordHistory(ctx, logger, req, outputPath, result, finished.Sub(runStart))

	return outputPath, nil
}

func (c *Converter) checkTools(ctx context.Context) error {
	defer c.observe(metrics.StageToolCheck, c.now())

	err := c.tools.Check(ctx)
	if err == nil {
		return nil
	}
	if _, ok := apperrors.KindOf(err); ok {
		return err
	}
	return apperrors.Wrap(err, apperrors.KindToolExecution, "a problem occurred while running the decoding tool")
}

func (c *Converter) loadModel(ctx context.Context, size model.ModelSize) (api.Model, error) {
	defer c.observe(metrics.StageModelLoad, c.now())

	recognizer, err := c.engine.Load(ctx, size)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindModelLoad, "error while loading the model").
			WithHints(ModelLoadHint)
	}
	return recognizer, nil
}

func (c *Converter) transcribe(ctx context.Context, recognizer api.Model, req model.TranscriptionRequest) (*model.TranscriptionResult, error) {
	defer c.observe(metrics.StageTranscribe, c.now())

	bar := c.progress.CreateBar("Transcribing " + filepath.Base(req.InputPath))
	result, err := recognizer.Transcribe(ctx, req.InputPath, api.TranscribeOptions{
		Language: req.LanguageOrAuto(),
		Progress: bar.SetPercent,
	})
	if err != nil {
		bar.Abort()
		c.progress.Wait()
		switch {
		case isMissingInput(err, req.InputPath):
			return nil, apperrors.Wrapf(err, apperrors.KindInputNotFound, "input file '%s' not found", req.InputPath)
		case ctx.Err() != nil:
			return nil, apperrors.Wrap(ctx.Err(), apperrors.KindTranscription, "transcription was interrupted")
		default:
			return nil, apperrors.Wrap(err, apperrors.KindTranscription, "error during transcription")
		}
	}
	bar.Complete()
	c.progress.Wait()
	return result, nil
}

// isMissingInput is true only when the not-exist error names the input
// itself, not a temp dir or an engine output file.
func isMissingInput(err error, inputPath string) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || !errors.Is(pathErr.Err, fs.ErrNotExist) {
		return false
	}
	return filepath.Clean(pathErr.Path) == filepath.Clean(inputPath)
}

func (c *Converter) write(req model.TranscriptionRequest, text string) (string, error) {
	defer c.observe(metrics.StageWrite, c.now())

	outputPath, err := files.ResolveOutputPath(req.InputPath, req.OutputPath, c.settings.OutputDir)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindOutputWrite, "failed to prepare the output directory")
	}
	if err := files.WriteTextFile(outputPath, text); err != nil {
		return "", apperrors.Wrapf(err, apperrors.KindOutputWrite, "failed to write output file '%s'", outputPath)
	}
	return outputPath, nil
}

func (c *Converter) recordHistory(ctx context.Context, logger *zap.Logger, req model.TranscriptionRequest,
	outputPath string, result *model.TranscriptionResult, elapsed time.Duration) {
	if c.history == nil {
		return
	}

	audioDuration, err := c.tools.Duration(ctx, req.InputPath)
	if err != nil {
		logger.Debug("could not probe audio duration", zap.Error(err))
	}

	record := model.Transcription{
		ID:               uuid.NewString(),
		InputPath:        req.InputPath,
		OutputPath:       outputPath,
		Model:            req.Model.String(),
		Engine:           c.engine.Name(),
		Language:         result.Language,
		TextLength:       len(result.Text),
		AudioDurationSec: audioDuration.Seconds(),
		ProcessingMs:     elapsed.Milliseconds(),
		CreatedAt:        c.now(),
	}
	if err := c.history.Save(ctx, record); err != nil {
		logger.Warn("failed to record transcription history", zap.Error(err))
	}
}

func (c *Converter) observe(stage string, start time.Time) {
	c.metrics.ObserveStage(stage, c.now().Sub(start))
}

func (c *Converter) status(format string, args ...interface{}) {
	fmt.Fprintf(c.settings.Status, format+"\n", args...)
}
