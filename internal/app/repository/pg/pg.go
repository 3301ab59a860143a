package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcription_history (
	id                 UUID PRIMARY KEY,
	input_path         TEXT NOT NULL,
	output_path        TEXT NOT NULL,
	model              TEXT NOT NULL,
	engine             TEXT NOT NULL,
	language           TEXT NOT NULL DEFAULT '',
	text_length        INTEGER NOT NULL,
	audio_duration_sec DOUBLE PRECISION NOT NULL DEFAULT 0,
	processing_ms      BIGINT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcription_history_created_at ON transcription_history (created_at);`

type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a lazy connection pool; nothing is dialled until first use.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := pdb.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
