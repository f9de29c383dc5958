// Package db defines the storage interface for transliteration history.
// Implementations live in the sqlite and postgres subpackages.
package db

import (
	"context"
	"time"
)

// Transcription source values.
const (
	SourceAPI    = "api"    // text submitted directly
	SourceSpeech = "speech" // text produced by the speech recognizer
)

// Transcription is one stored transliteration: the submitted or recognized
// text, its normalized Latin form, and the Baybayin output.
type Transcription struct {
	ID         int64
	Source     string
	Language   string
	SourceText string
	Latin      string
	Baybayin   string
	CreatedAt  time.Time
}

// Feedback is a visitor comment on a stored transcription.
type Feedback struct {
	ID              int64
	TranscriptionID int64
	IPHash          string
	FeedbackText    string
	CreatedAt       time.Time
}

type CreateTranscriptionParams struct {
	Source     string
	Language   string
	SourceText string
	Latin      string
	Baybayin   string
}

type ListTranscriptionsParams struct {
	Source string // empty matches all sources
	Limit  int32
	Offset int32
}

type CreateFeedbackParams struct {
	TranscriptionID int64
	IPHash          string
	FeedbackText    string
}

type ListFeedbackParams struct {
	TranscriptionID int64
	Limit           int32
	Offset          int32
}

// Repository is the storage interface shared by the SQLite and PostgreSQL
// backends.
type Repository interface {
	CreateTranscription(ctx context.Context, arg CreateTranscriptionParams) (Transcription, error)
	GetTranscription(ctx context.Context, id int64) (Transcription, error)
	ListTranscriptions(ctx context.Context, arg ListTranscriptionsParams) ([]Transcription, error)
	CountTranscriptions(ctx context.Context, source string) (int64, error)
	DeleteOldTranscriptions(ctx context.Context, before time.Time) (int64, error)

	CreateFeedback(ctx context.Context, arg CreateFeedbackParams) (Feedback, error)
	ListFeedback(ctx context.Context, arg ListFeedbackParams) ([]Feedback, error)
	CountFeedback(ctx context.Context, transcriptionID int64) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
