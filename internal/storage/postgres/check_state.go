package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"content_watcher/internal/domain"
)

type CheckStateStore struct {
	db *sqlx.DB
}

func NewCheckStateStore(db *sqlx.DB) *CheckStateStore {
	return &CheckStateStore{db: db}
}

// Get returns the check state for a source, or nil if the source has
// never been checked.
func (s *CheckStateStore) Get(ctx context.Context, sourceID string) (*domain.CheckState, error) {
	var state domain.CheckState
	query := `
		SELECT id, source_id, last_check_time, last_content_id, last_content_timestamp, created_at, updated_at
		FROM source_check_state
		WHERE source_id = $1`

	err := s.db.GetContext(ctx, &state, query, sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Update upserts the source's row and always refreshes last_check_time,
// so a source with no new content is still marked as checked. Nil
// content fields leave the stored content cursor untouched.
func (s *CheckStateStore) Update(ctx context.Context, sourceID string, contentID *string, contentTimestamp *time.Time) error {
	query := `
		INSERT INTO source_check_state (source_id, last_check_time, last_content_id, last_content_timestamp)
		VALUES ($1, NOW(), $2, $3)
		ON CONFLICT (source_id) DO UPDATE SET
			last_check_time = NOW(),
			last_content_id = COALESCE(EXCLUDED.last_content_id, source_check_state.last_content_id),
			last_content_timestamp = COALESCE(EXCLUDED.last_content_timestamp, source_check_state.last_content_timestamp),
			updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, sourceID, contentID, contentTimestamp)
	return err
}
