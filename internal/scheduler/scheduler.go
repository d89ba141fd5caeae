// Package scheduler owns the timing of check and cleanup cycles.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"content_watcher/internal/domain"
)

const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 1440
)

// CycleRunner runs one full check cycle over all sources.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleSummary, error)
}

// Maintainer is the dedup store surface the cleanup cycle needs.
type Maintainer interface {
	SweepExpired(ctx context.Context, maxAgeDays int) (int64, error)
	Stats(ctx context.Context) (*domain.StoreStats, error)
}

// RawSender carries cycle-level summaries to the channel.
type RawSender interface {
	SendRaw(ctx context.Context, text string) error
}

// Config holds scheduler timing settings.
type Config struct {
	IntervalMinutes int
	InitialDelay    time.Duration
	CleanupTime     string // "HH:MM", local time
	RetentionDays   int
	// ErrorSummaryInterval throttles aggregated failure messages.
	ErrorSummaryInterval time.Duration
}

// Status is a point-in-time snapshot of the scheduler.
type Status struct {
	Running   bool
	Interval  time.Duration
	NextCheck time.Time
	Tasks     []string
}

type Scheduler struct {
	runner CycleRunner
	store  Maintainer
	sender RawSender
	logger *slog.Logger

	mu        sync.Mutex
	cfg       Config
	running   bool
	startedAt time.Time
	stopCh    chan struct{}
	cron      *cron.Cron

	// cycleMu enforces the single-active-cycle invariant across timer
	// ticks and manual triggers.
	cycleMu sync.Mutex

	summaryMu   sync.Mutex
	lastSummary time.Time
}

func New(runner CycleRunner, store Maintainer, sender RawSender, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if err := ValidateInterval(cfg.IntervalMinutes); err != nil {
		return nil, err
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 10 * time.Second
	}
	if cfg.CleanupTime == "" {
		cfg.CleanupTime = "04:00"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	if cfg.ErrorSummaryInterval <= 0 {
		cfg.ErrorSummaryInterval = time.Hour
	}
	if _, err := cleanupSpec(cfg.CleanupTime); err != nil {
		return nil, err
	}
	return &Scheduler{
		runner: runner,
		store:  store,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// ValidateInterval checks the [5, 1440] minute bound.
func ValidateInterval(minutes int) error {
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		return fmt.Errorf("%w: %d minutes (allowed %d-%d)",
			domain.ErrInvalidInterval, minutes, MinIntervalMinutes, MaxIntervalMinutes)
	}
	return nil
}

func cleanupSpec(hhmm string) (string, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("parse cleanup time %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("cleanup time %q out of range", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// Start begins periodic ticking and schedules the daily cleanup. One
// check cycle runs shortly after start so staleness stays bounded after
// a restart. Returns ErrAlreadyRunning when active.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return domain.ErrAlreadyRunning
	}

	spec, err := cleanupSpec(s.cfg.CleanupTime)
	if err != nil {
		return err
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() { s.runCleanup(ctx) }); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	s.cron.Start()

	s.stopCh = make(chan struct{})
	s.running = true
	s.startedAt = time.Now()

	go s.loop(ctx, s.stopCh, s.interval())

	s.logger.Info("scheduler started",
		"interval", s.interval(),
		"cleanup_time", s.cfg.CleanupTime,
		"initial_delay", s.cfg.InitialDelay,
	)
	return nil
}

// Stop halts future ticks. A cycle already in flight runs to
// completion. Calling Stop when not running is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.cron.Stop()
	s.running = false
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, stopCh chan struct{}, interval time.Duration) {
	initial := time.NewTimer(s.cfg.InitialDelay)
	defer initial.Stop()

	select {
	case <-stopCh:
		return
	case <-ctx.Done():
		return
	case <-initial.C:
		s.runCycle(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// TriggerCheck runs a check cycle out-of-band. It is subject to the
// same single-active-cycle constraint as scheduled ticks: if a cycle is
// in flight the trigger is rejected with ErrCycleInProgress.
func (s *Scheduler) TriggerCheck(ctx context.Context) (*domain.CycleSummary, error) {
	if !s.cycleMu.TryLock() {
		return nil, domain.ErrCycleInProgress
	}
	defer s.cycleMu.Unlock()

	s.logger.Info("manual check triggered")
	summary, err := s.runner.RunCycle(ctx)
	if err != nil {
		return nil, err
	}
	s.reportFailures(ctx, summary)
	return summary, nil
}

// Status reports the running flag, active tasks, the configured
// interval, and an interval-aligned estimate of the next check.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:  s.running,
		Interval: s.interval(),
	}
	if !s.running {
		return st
	}

	st.Tasks = []string{"check", "cleanup"}

	elapsed := time.Since(s.startedAt)
	ticks := int64(elapsed/st.Interval) + 1
	st.NextCheck = s.startedAt.Add(time.Duration(ticks) * st.Interval)
	return st
}

// UpdateInterval validates the new interval and applies it with a
// stop/start cycle when running.
func (s *Scheduler) UpdateInterval(ctx context.Context, minutes int) error {
	if err := ValidateInterval(minutes); err != nil {
		return err
	}

	s.mu.Lock()
	wasRunning := s.running
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	s.mu.Lock()
	s.cfg.IntervalMinutes = minutes
	s.mu.Unlock()

	if wasRunning {
		return s.Start(ctx)
	}
	return nil
}

func (s *Scheduler) interval() time.Duration {
	return time.Duration(s.cfg.IntervalMinutes) * time.Minute
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if !s.cycleMu.TryLock() {
		s.logger.Warn("skipping tick, cycle already in progress")
		return
	}
	defer s.cycleMu.Unlock()

	summary, err := s.runner.RunCycle(ctx)
	if err != nil {
		// A cycle error never terminates the scheduler.
		s.logger.Error("check cycle failed", "error", err)
		return
	}
	s.reportFailures(ctx, summary)
}

// reportFailures sends one aggregated failure summary through the raw
// path, at most once per ErrorSummaryInterval, so a persistently broken
// source does not flood the channel.
func (s *Scheduler) reportFailures(ctx context.Context, summary *domain.CycleSummary) {
	if len(summary.Failures) == 0 {
		return
	}

	s.summaryMu.Lock()
	throttled := time.Since(s.lastSummary) < s.cfg.ErrorSummaryInterval
	if !throttled {
		s.lastSummary = time.Now()
	}
	s.summaryMu.Unlock()

	if throttled {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ %d source(s) failed during the last check:\n", len(summary.Failures))
	for _, f := range summary.Failures {
		fmt.Fprintf(&b, "• %s: %v\n", f.SourceID, f.Err)
	}

	if err := s.sender.SendRaw(ctx, b.String()); err != nil {
		s.logger.Error("failed to send error summary", "error", err)
	}
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	s.logger.Info("starting cleanup cycle", "retention_days", s.cfg.RetentionDays)

	removed, err := s.store.SweepExpired(ctx, s.cfg.RetentionDays)
	if err != nil {
		s.logger.Error("retention sweep failed", "error", err)
	} else {
		s.logger.Info("retention sweep completed", "removed", removed)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to fetch store stats", "error", err)
		return
	}
	s.logger.Info("store stats",
		"total_notifications", stats.TotalNotifications,
		"notifications_24h", stats.Notifications24h,
		"notifications_7d", stats.Notifications7d,
		"active_sources", stats.ActiveSources,
		"last_global_check", stats.LastGlobalCheck,
	)
}
