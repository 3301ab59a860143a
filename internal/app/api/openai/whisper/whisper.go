package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/model"
)

const EngineName = "openai"

// ErrMissingAPIKey is returned by Load when no API key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// RemoteEngine transcribes through the OpenAI audio API.
type RemoteEngine struct {
	client    *openai.Client
	model     string
	hasAPIKey bool
	logger    *zap.Logger
}

// NewRemoteEngine creates a new RemoteEngine instance. An empty remoteModel means whisper-1.
func NewRemoteEngine(client *openai.Client, remoteModel string, hasAPIKey bool, logger *zap.Logger) *RemoteEngine {
	if remoteModel == "" {
		remoteModel = openai.Whisper1
	}
	return &RemoteEngine{client: client, model: remoteModel, hasAPIKey: hasAPIKey, logger: logger}
}

func (e *RemoteEngine) Name() string {
	return EngineName
}

// Load checks credentials. The hosted model is fixed, so size only shows up in logs.
func (e *RemoteEngine) Load(ctx context.Context, size model.ModelSize) (api.Model, error) {
	if !e.hasAPIKey {
		return nil, ErrMissingAPIKey
	}
	e.logger.Debug("remote model selected; size label is not used by the API",
		zap.String("remote_model", e.model),
		zap.String("size", size.String()))
	return NewRemoteTranscriber(e.client, e.model), nil
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, remoteModel string) *RemoteTranscriber {
	return &RemoteTranscriber{client: client, model: remoteModel}
}

// Transcribe uploads the file. The API does not stream progress, so Progress
// only sees 100 once the response arrives.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string, opts api.TranscribeOptions) (*model.TranscriptionResult, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return nil, fmt.Errorf("input file %s: %w", inputFilePath, err)
	}

	startTime := time.Now()
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if opts.Language != "" && opts.Language != "auto" {
		req.Language = opts.Language
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}
	if opts.Progress != nil {
		opts.Progress(100)
	}

	return &model.TranscriptionResult{
		Text:      resp.Text,
		Language:  resp.Language,
		Duration:  time.Since(startTime),
		ModelUsed: rt.model,
		Engine:    EngineName,
	}, nil
}

func (rt *RemoteTranscriber) Close() error {
	return nil
}
