package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"content_watcher/internal/domain"
)

type NotificationStore struct {
	db *sqlx.DB
}

func NewNotificationStore(db *sqlx.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// IsSent reports whether the item was already delivered.
func (s *NotificationStore) IsSent(ctx context.Context, sourceID, contentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM sent_notification WHERE source_id = $1 AND content_id = $2
	)`

	if err := s.db.GetContext(ctx, &exists, query, sourceID, contentID); err != nil {
		return false, err
	}
	return exists, nil
}

// RecordSent upserts the delivered-notification row. A second call with
// the same (source_id, content_id) overwrites instead of duplicating, so
// recording stays idempotent under retries.
func (s *NotificationStore) RecordSent(ctx context.Context, sourceID, contentID, contentURL, externalMessageID string) error {
	query := `
		INSERT INTO sent_notification (source_id, content_id, content_url, external_message_id, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (source_id, content_id) DO UPDATE SET
			content_url = EXCLUDED.content_url,
			external_message_id = EXCLUDED.external_message_id,
			sent_at = EXCLUDED.sent_at`

	_, err := s.db.ExecContext(ctx, query, sourceID, contentID, contentURL, externalMessageID)
	return err
}

// SweepExpired deletes ledger rows older than maxAgeDays and returns the
// number of rows removed.
func (s *NotificationStore) SweepExpired(ctx context.Context, maxAgeDays int) (int64, error) {
	query := `DELETE FROM sent_notification WHERE sent_at < NOW() - $1 * INTERVAL '1 day'`

	res, err := s.db.ExecContext(ctx, query, maxAgeDays)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

// Stats aggregates over both tables. Read-only.
func (s *NotificationStore) Stats(ctx context.Context) (*domain.StoreStats, error) {
	var stats domain.StoreStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM sent_notification) AS total_notifications,
			(SELECT COUNT(*) FROM sent_notification WHERE sent_at > NOW() - INTERVAL '24 hours') AS notifications_24h,
			(SELECT COUNT(*) FROM sent_notification WHERE sent_at > NOW() - INTERVAL '7 days') AS notifications_7d,
			(SELECT COUNT(*) FROM source_check_state) AS active_sources,
			(SELECT MAX(last_check_time) FROM source_check_state) AS last_global_check`

	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
