package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcription_history (
	id                 TEXT PRIMARY KEY,
	input_path         TEXT NOT NULL,
	output_path        TEXT NOT NULL,
	model              TEXT NOT NULL,
	engine             TEXT NOT NULL,
	language           TEXT NOT NULL DEFAULT '',
	text_length        INTEGER NOT NULL,
	audio_duration_sec REAL NOT NULL DEFAULT 0,
	processing_ms      INTEGER NOT NULL,
	created_at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcription_history_created_at ON transcription_history (created_at);`

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the database file at dbFilePath.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if dir := filepath.Dir(dbFilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&_busy_timeout=5000", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

// Migrate creates the history table if it does not exist.
func (sdb *SQLiteDB) Migrate(ctx context.Context) error {
	if _, err := sdb.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}
