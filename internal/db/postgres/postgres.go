package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tinig-app/tinig/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using PostgreSQL via pgx.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and verifies the connection. The transliteration
// service is read-mostly and low-traffic, so the pool stays small.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	// Schema is idempotent (IF NOT EXISTS throughout).
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// PoolStats exposes pool statistics for the Prometheus gauges in cmd/web.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const transcriptionColumns = "id, source, language, source_text, latin, baybayin, created_at"

func scanTranscription(row pgx.Row) (db.Transcription, error) {
	var t db.Transcription
	err := row.Scan(&t.ID, &t.Source, &t.Language, &t.SourceText, &t.Latin, &t.Baybayin, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return db.Transcription{}, db.ErrNoRows
	}
	if err != nil {
		return db.Transcription{}, err
	}
	return t, nil
}

func (r *Repository) CreateTranscription(ctx context.Context, arg db.CreateTranscriptionParams) (db.Transcription, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transcriptions (source, language, source_text, latin, baybayin, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING `+transcriptionColumns+`
	`, arg.Source, arg.Language, arg.SourceText, arg.Latin, arg.Baybayin)
	return scanTranscription(row)
}

func (r *Repository) GetTranscription(ctx context.Context, id int64) (db.Transcription, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transcriptionColumns+`
		FROM transcriptions
		WHERE id = $1
	`, id)
	return scanTranscription(row)
}

func (r *Repository) ListTranscriptions(ctx context.Context, arg db.ListTranscriptionsParams) ([]db.Transcription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transcriptionColumns+`
		FROM transcriptions
		WHERE ($1 = '' OR source = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, arg.Source, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Transcription
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) CountTranscriptions(ctx context.Context, source string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM transcriptions
		WHERE ($1 = '' OR source = $1)
	`, source).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldTranscriptions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM transcriptions WHERE created_at < $1
	`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) CreateFeedback(ctx context.Context, arg db.CreateFeedbackParams) (db.Feedback, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (transcription_id, ip_hash, feedback_text, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, transcription_id, ip_hash, feedback_text, created_at
	`, arg.TranscriptionID, arg.IPHash, arg.FeedbackText)

	var f db.Feedback
	if err := row.Scan(&f.ID, &f.TranscriptionID, &f.IPHash, &f.FeedbackText, &f.CreatedAt); err != nil {
		return db.Feedback{}, err
	}
	return f, nil
}

func (r *Repository) CountFeedback(ctx context.Context, transcriptionID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM feedback
		WHERE transcription_id = $1
	`, transcriptionID).Scan(&count)
	return count, err
}

func (r *Repository) ListFeedback(ctx context.Context, arg db.ListFeedbackParams) ([]db.Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, transcription_id, ip_hash, feedback_text, created_at
		FROM feedback
		WHERE transcription_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, arg.TranscriptionID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Feedback
	for rows.Next() {
		var f db.Feedback
		if err := rows.Scan(&f.ID, &f.TranscriptionID, &f.IPHash, &f.FeedbackText, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
