package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/app/model"
)

// MockEngine is a testify mock of api.Engine.
type MockEngine struct {
	mock.Mock
	name string
}

func NewMockEngine(name string) *MockEngine {
	return &MockEngine{name: name}
}

func (m *MockEngine) Name() string {
	return m.name
}

func (m *MockEngine) Load(ctx context.Context, size model.ModelSize) (api.Model, error) {
	args := m.Called(ctx, size)
	var loaded api.Model
	if v := args.Get(0); v != nil {
		loaded = v.(api.Model)
	}
	return loaded, args.Error(1)
}

// MockModel is a testify mock of api.Model. Progress holds the percentages
// it reports to the caller's callback on each Transcribe.
type MockModel struct {
	mock.Mock
	Progress []int
}

func NewMockModel() *MockModel {
	return &MockModel{Progress: []int{25, 50, 100}}
}

// OnTranscribe expects one Transcribe call of any arguments returning text or err.
func (m *MockModel) OnTranscribe(text string, err error) *mock.Call {
	if err != nil {
		return m.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return(nil, err)
	}
	return m.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.TranscriptionResult{Text: text, Language: "en"}, nil)
}

func (m *MockModel) Transcribe(ctx context.Context, inputPath string, opts api.TranscribeOptions) (*model.TranscriptionResult, error) {
	args := m.Called(ctx, inputPath, opts)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if opts.Progress != nil {
		for _, p := range m.Progress {
			opts.Progress(p)
		}
	}
	return args.Get(0).(*model.TranscriptionResult), nil
}

// Close is a no-op unless an expectation was registered for it.
func (m *MockModel) Close() error {
	for _, c := range m.ExpectedCalls {
		if c.Method == "Close" {
			return m.Called().Error(0)
		}
	}
	return nil
}
