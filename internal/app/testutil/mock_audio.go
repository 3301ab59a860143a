package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAudioTools is a testify mock of the converter's decoding tool.
// Duration returns DurationValue without recording a call.
type MockAudioTools struct {
	mock.Mock
	DurationValue time.Duration
}

// NewAvailableAudioTools returns tools whose Check always succeeds.
func NewAvailableAudioTools() *MockAudioTools {
	m := &MockAudioTools{DurationValue: 3 * time.Second}
	m.On("Check", mock.Anything).Return(nil)
	return m
}

func (m *MockAudioTools) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAudioTools) Duration(ctx context.Context, filePath string) (time.Duration, error) {
	return m.DurationValue, nil
}
