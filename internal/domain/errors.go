package domain

import "errors"

var (
	// ErrNotConfigured marks a source that lacks required credentials
	// or identifiers. The scheduler skips such sources; it is not a
	// failed check.
	ErrNotConfigured = errors.New("source not configured")

	// ErrRateLimited is the rate-limit signal surfaced by a fetch.
	// The backoff controller retries these up to its attempt bound.
	ErrRateLimited = errors.New("rate limited by source")

	// ErrAlreadyRunning is returned by Scheduler.Start when active.
	ErrAlreadyRunning = errors.New("scheduler already running")

	// ErrInvalidInterval is returned for check intervals outside [5, 1440] minutes.
	ErrInvalidInterval = errors.New("check interval out of range")

	// ErrCycleInProgress is returned when a cycle is requested while
	// another one is in flight.
	ErrCycleInProgress = errors.New("check cycle already in progress")
)
