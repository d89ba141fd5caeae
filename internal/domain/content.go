package domain

import "time"

// ContentItem is one piece of content fetched from a source. It is
// transient: only its identity and timestamp are ever persisted.
type ContentItem struct {
	SourceID    string
	ID          string
	Title       string
	URL         string
	Author      string
	PublishedAt time.Time
}

// CheckState is the per-source cursor row. LastContentID and
// LastContentTimestamp are nil until the source has produced at least
// one item.
type CheckState struct {
	ID                   int64      `db:"id"`
	SourceID             string     `db:"source_id"`
	LastCheckTime        time.Time  `db:"last_check_time"`
	LastContentID        *string    `db:"last_content_id"`
	LastContentTimestamp *time.Time `db:"last_content_timestamp"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

// SentNotification is one row of the delivered-notification ledger,
// unique per (source_id, content_id).
type SentNotification struct {
	ID                int64     `db:"id"`
	SourceID          string    `db:"source_id"`
	ContentID         string    `db:"content_id"`
	ContentURL        string    `db:"content_url"`
	ExternalMessageID string    `db:"external_message_id"`
	SentAt            time.Time `db:"sent_at"`
}
