package testutil

import (
	"context"
	"sort"
	"sync"

	"whisper-transcribe/internal/app/model"
)

// MockTranscriptionDAO keeps history records in memory. Set the error
// fields to make the matching method fail.
type MockTranscriptionDAO struct {
	mu      sync.Mutex
	records []model.Transcription
	closed  bool

	MigrateErr error
	SaveErr    error
	RecentErr  error
}

func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{}
}

func (m *MockTranscriptionDAO) Migrate(ctx context.Context) error {
	return m.MigrateErr
}

func (m *MockTranscriptionDAO) Save(ctx context.Context, t model.Transcription) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, t)
	return nil
}

func (m *MockTranscriptionDAO) Recent(ctx context.Context, limit int) ([]model.Transcription, error) {
	if m.RecentErr != nil {
		return nil, m.RecentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Transcription, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Records returns a copy of everything saved so far, oldest first.
func (m *MockTranscriptionDAO) Records() []model.Transcription {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Transcription, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockTranscriptionDAO) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
