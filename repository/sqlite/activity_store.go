package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

type activityStore struct {
	db  *sql.DB
	key string
}

// NewActivityStore keeps the activity collection in a key/value table.
func NewActivityStore(ctx context.Context, db *sql.DB, key string) (repository.SnapshotStore, error) {
	if key == "" {
		key = repository.DefaultSnapshotKey
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &activityStore{db: db, key: key}, nil
}

func (s *activityStore) Load(ctx context.Context) ([]domain.Activity, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return repository.DecodeSnapshot([]byte(value))
}

func (s *activityStore) SaveAll(ctx context.Context, activities []domain.Activity) error {
	payload, err := repository.EncodeSnapshot(activities)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, s.key, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write activities: %w", err)
	}
	return nil
}
