package pg

import (
	"context"
	"fmt"

	"whisper-transcribe/internal/app/model"
)

func (pdb *PostgresDB) Save(ctx context.Context, t model.Transcription) error {
	insertSQL := `INSERT INTO transcription_history
		(id, input_path, output_path, model, engine, language, text_length, audio_duration_sec, processing_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := pdb.db.ExecContext(ctx, insertSQL, t.ID, t.InputPath, t.OutputPath, t.Model, t.Engine, t.Language,
		t.TextLength, t.AudioDurationSec, t.ProcessingMs, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transcription history: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Recent(ctx context.Context, limit int) ([]model.Transcription, error) {
	sqlStr := `
		SELECT id, input_path, output_path, model, engine, language, text_length, audio_duration_sec, processing_ms, created_at
		FROM transcription_history
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := pdb.db.QueryContext(ctx, sqlStr, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		err = rows.Scan(&t.ID, &t.InputPath, &t.OutputPath, &t.Model, &t.Engine, &t.Language,
			&t.TextLength, &t.AudioDurationSec, &t.ProcessingMs, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return transcriptions, nil
}
