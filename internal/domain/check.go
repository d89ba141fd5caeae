package domain

import "time"

// CheckResult holds the outcome of one source's check within a cycle.
type CheckResult struct {
	SourceID   string
	Fetched    int
	New        []ContentItem
	Dispatched int
	Failed     int
	Err        error
	Duration   time.Duration
}

// CycleSummary aggregates the per-source results of one check cycle.
type CycleSummary struct {
	Started    time.Time
	Duration   time.Duration
	Checked    int
	Skipped    int
	NewItems   int
	Dispatched int
	Failures   []SourceFailure
}

// SourceFailure names a source whose check failed and why.
type SourceFailure struct {
	SourceID string
	Err      error
}

// StoreStats is the read-only aggregate exposed by the dedup store.
type StoreStats struct {
	TotalNotifications int64      `db:"total_notifications"`
	Notifications24h   int64      `db:"notifications_24h"`
	Notifications7d    int64      `db:"notifications_7d"`
	ActiveSources      int64      `db:"active_sources"`
	LastGlobalCheck    *time.Time `db:"last_global_check"`
}
