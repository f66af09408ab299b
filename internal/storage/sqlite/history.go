package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"playstore_analyzer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	app_id TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	review_count INTEGER NOT NULL,
	average_length REAL NOT NULL,
	reviews_path TEXT NOT NULL,
	details_path TEXT NOT NULL,
	chart_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_app_id ON runs (app_id, started_at);`

// HistoryStore keeps one row per completed analysis run in an
// embedded SQLite database under the results root.
type HistoryStore struct {
	db *sqlx.DB
}

// Open connects to (and if needed creates) the history database.
func Open(path string) (*HistoryStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Record(ctx context.Context, record *domain.RunRecord) error {
	query := `
		INSERT INTO runs (app_id, started_at, review_count, average_length, reviews_path, details_path, chart_path)
		VALUES (:app_id, :started_at, :review_count, :average_length, :reviews_path, :details_path, :chart_path)`

	res, err := s.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

// Recent returns up to limit runs for one app, newest first.
func (s *HistoryStore) Recent(ctx context.Context, appID string, limit int) ([]domain.RunRecord, error) {
	query := `
		SELECT id, app_id, started_at, review_count, average_length, reviews_path, details_path, chart_path
		FROM runs
		WHERE app_id = ?
		ORDER BY started_at DESC
		LIMIT ?`

	var records []domain.RunRecord
	if err := s.db.SelectContext(ctx, &records, query, appID, limit); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}
