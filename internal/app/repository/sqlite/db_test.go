package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-transcribe/internal/app/model"
	"whisper-transcribe/internal/app/repository"
)

func TestSQLiteDB_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*SQLiteDB)(nil)
}

func record(id string, createdAt time.Time) model.Transcription {
	return model.Transcription{
		ID:               id,
		InputPath:        "audio/" + id + ".m4a",
		OutputPath:       "text/" + id + ".txt",
		Model:            "base",
		Engine:           "whisper_cpp",
		Language:         "auto",
		TextLength:       42,
		AudioDurationSec: 12.5,
		ProcessingMs:     3100,
		CreatedAt:        createdAt,
	}
}

func TestSQLiteDB_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "migrate is idempotent")

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(ctx, record("first", base)))
	require.NoError(t, db.Save(ctx, record("second", base.Add(time.Hour))))
	require.NoError(t, db.Save(ctx, record("third", base.Add(2*time.Hour))))

	got, err := db.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "text/third.txt", got[0].OutputPath)
	assert.Equal(t, 42, got[0].TextLength)
	assert.InDelta(t, 12.5, got[0].AudioDurationSec, 0.001)
	assert.True(t, base.Add(2*time.Hour).Equal(got[0].CreatedAt))
}

func TestSQLiteDB_DuplicateID(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx))

	require.NoError(t, db.Save(ctx, record("same", time.Now())))
	assert.Error(t, db.Save(ctx, record("same", time.Now())))
}

func TestSQLiteDB_SaveError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := NewWithDB(conn)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcription_history")).
		WillReturnError(errors.New("database is locked"))

	err = db.Save(context.Background(), record("x", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDB_RecentQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := NewWithDB(conn)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transcription_history")).
		WithArgs(5).
		WillReturnError(errors.New("no such table"))

	_, err = db.Recent(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
