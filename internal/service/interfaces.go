package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"content_watcher/internal/domain"
)

// Poller is one source's polling contract.
type Poller interface {
	ID() string
	Name() string
	Configured() bool
	// FetchLatest returns up to limit items, most recent first. Absence
	// of new content is not an error.
	FetchLatest(ctx context.Context, limit int) ([]domain.ContentItem, error)
	// FormatNotification renders one item. Pure.
	FormatNotification(item domain.ContentItem) string
}

type CheckStateStore interface {
	// Get returns nil for a source that has never been checked.
	Get(ctx context.Context, sourceID string) (*domain.CheckState, error)
	// Update upserts and always refreshes last_check_time; nil content
	// fields leave the stored content cursor untouched.
	Update(ctx context.Context, sourceID string, contentID *string, contentTimestamp *time.Time) error
}

type NotificationStore interface {
	IsSent(ctx context.Context, sourceID, contentID string) (bool, error)
	RecordSent(ctx context.Context, sourceID, contentID, contentURL, externalMessageID string) error
	SweepExpired(ctx context.Context, maxAgeDays int) (int64, error)
	Stats(ctx context.Context) (*domain.StoreStats, error)
}

type Dispatcher interface {
	// DispatchBatch sends items sequentially, rendering each with
	// render, and reports how many were sent and how many failed.
	DispatchBatch(ctx context.Context, sourceID string, items []domain.ContentItem, render func(domain.ContentItem) string) (sent, failed int)
	SendRaw(ctx context.Context, text string) error
}
