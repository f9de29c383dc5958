package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tinig-app/tinig/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath. ":memory:" gives an
// ephemeral database, used by tests.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := dbPath == ":memory:"
	if !isNew {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			isNew = true
		}
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if isNew {
		if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
			sqliteDB.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
		if dbPath != ":memory:" {
			slog.Info("created new SQLite database", "path", dbPath)
		}
	}

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const transcriptionColumns = "id, source, language, source_text, latin, baybayin, created_at"

func (r *Repository) CreateTranscription(ctx context.Context, arg db.CreateTranscriptionParams) (db.Transcription, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO transcriptions (source, language, source_text, latin, baybayin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, arg.Source, arg.Language, arg.SourceText, arg.Latin, arg.Baybayin, now)
	if err != nil {
		return db.Transcription{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Transcription{}, err
	}

	return r.GetTranscription(ctx, id)
}

func (r *Repository) GetTranscription(ctx context.Context, id int64) (db.Transcription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+transcriptionColumns+`
		FROM transcriptions
		WHERE id = ?
	`, id)

	var t db.Transcription
	err := row.Scan(&t.ID, &t.Source, &t.Language, &t.SourceText, &t.Latin, &t.Baybayin, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return db.Transcription{}, db.ErrNoRows
	}
	if err != nil {
		return db.Transcription{}, err
	}
	return t, nil
}

func (r *Repository) ListTranscriptions(ctx context.Context, arg db.ListTranscriptionsParams) ([]db.Transcription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transcriptionColumns+`
		FROM transcriptions
		WHERE (? = '' OR source = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, arg.Source, arg.Source, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Transcription
	for rows.Next() {
		var t db.Transcription
		if err := rows.Scan(&t.ID, &t.Source, &t.Language, &t.SourceText, &t.Latin, &t.Baybayin, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) CountTranscriptions(ctx context.Context, source string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM transcriptions
		WHERE (? = '' OR source = ?)
	`, source, source).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldTranscriptions(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM transcriptions WHERE created_at < ?
	`, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *Repository) CreateFeedback(ctx context.Context, arg db.CreateFeedbackParams) (db.Feedback, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (transcription_id, ip_hash, feedback_text, created_at)
		VALUES (?, ?, ?, ?)
	`, arg.TranscriptionID, arg.IPHash, arg.FeedbackText, now)
	if err != nil {
		return db.Feedback{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Feedback{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, transcription_id, ip_hash, feedback_text, created_at
		FROM feedback
		WHERE id = ?
	`, id)

	var f db.Feedback
	if err := row.Scan(&f.ID, &f.TranscriptionID, &f.IPHash, &f.FeedbackText, &f.CreatedAt); err != nil {
		return db.Feedback{}, err
	}
	return f, nil
}

func (r *Repository) CountFeedback(ctx context.Context, transcriptionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM feedback
		WHERE transcription_id = ?
	`, transcriptionID).Scan(&count)
	return count, err
}

func (r *Repository) ListFeedback(ctx context.Context, arg db.ListFeedbackParams) ([]db.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, transcription_id, ip_hash, feedback_text, created_at
		FROM feedback
		WHERE transcription_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
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
