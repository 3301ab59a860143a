package model

import "time"

// TranscriptionResult is what a recognition model returns for one file.
// Only Text is written to the output file.
type TranscriptionResult struct {
	Text      string
	Language  string
	Duration  time.Duration
	ModelUsed string
	Engine    string
}

// Transcription is a history record of one successful run.
type Transcription struct {
	ID               string
	InputPath        string
	OutputPath       string
	Model            string
	Engine           string
	Language         string
	TextLength       int
	AudioDurationSec float64
	ProcessingMs     int64
	CreatedAt        time.Time
}
