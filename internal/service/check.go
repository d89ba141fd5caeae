package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"content_watcher/internal/domain"
)

// defaultLookback bounds how far back a never-checked source is scanned.
const defaultLookback = 24 * time.Hour

// Config holds check orchestration settings.
type Config struct {
	FetchLimit int
}

// CheckService runs check cycles over the configured pollers: fetch,
// filter against the cursor and the sent ledger, dispatch, advance.
type CheckService struct {
	pollers       []Poller
	checkState    CheckStateStore
	notifications NotificationStore
	dispatcher    Dispatcher
	logger        *slog.Logger
	cfg           Config
}

func NewCheckService(
	pollers []Poller,
	checkState CheckStateStore,
	notifications NotificationStore,
	dispatcher Dispatcher,
	logger *slog.Logger,
	cfg Config,
) *CheckService {
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 10
	}
	return &CheckService{
		pollers:       pollers,
		checkState:    checkState,
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// RunCycle checks every configured poller. A failing source never
// blocks the others; failures are collected into the summary.
func (s *CheckService) RunCycle(ctx context.Context) (*domain.CycleSummary, error) {
	summary := &domain.CycleSummary{Started: time.Now()}

	s.logger.Info("starting check cycle", "sources", len(s.pollers))

	for _, p := range s.pollers {
		if !p.Configured() {
			s.logger.Debug("skipping unconfigured source", "source", p.ID())
			summary.Skipped++
			continue
		}

		res := s.CheckSource(ctx, p)
		summary.Checked++
		summary.NewItems += len(res.New)
		summary.Dispatched += res.Dispatched

		if res.Err != nil {
			summary.Failures = append(summary.Failures, domain.SourceFailure{
				SourceID: res.SourceID,
				Err:      res.Err,
			})
			s.logger.Error("source check failed", "source", res.SourceID, "error", res.Err)
		}
	}

	summary.Duration = time.Since(summary.Started)

	s.logger.Info("check cycle completed",
		"checked", summary.Checked,
		"skipped", summary.Skipped,
		"new_items", summary.NewItems,
		"dispatched", summary.Dispatched,
		"failed_sources", len(summary.Failures),
		"duration", summary.Duration,
	)

	return summary, nil
}

// CheckSource runs one source's check. The check state update is
// guaranteed to be the last operation for the source: it runs after all
// dispatch attempts, and it refreshes last_check_time even when the
// fetch failed or returned nothing, so a quiet source is still marked
// as checked. The content cursor only advances when items were fetched.
func (s *CheckService) CheckSource(ctx context.Context, p Poller) (res *domain.CheckResult) {
	start := time.Now()
	res = &domain.CheckResult{SourceID: p.ID()}
	logger := s.logger.With("source", p.ID())

	var newest *domain.ContentItem
	defer func() {
		var contentID *string
		var contentTS *time.Time
		if newest != nil {
			contentID = &newest.ID
			contentTS = &newest.PublishedAt
		}
		if err := s.checkState.Update(ctx, p.ID(), contentID, contentTS); err != nil {
			logger.Error("failed to update check state", "error", err)
			if res.Err == nil {
				res.Err = fmt.Errorf("update check state: %w", err)
			}
		}
		res.Duration = time.Since(start)
	}()

	state, err := s.checkState.Get(ctx, p.ID())
	if err != nil {
		res.Err = fmt.Errorf("read check state: %w", err)
		return res
	}

	cursor := time.Now().Add(-defaultLookback)
	if state != nil && state.LastContentTimestamp != nil {
		cursor = *state.LastContentTimestamp
	}

	items, err := p.FetchLatest(ctx, s.cfg.FetchLimit)
	if err != nil {
		res.Err = fmt.Errorf("fetch latest: %w", err)
		return res
	}
	res.Fetched = len(items)
	if len(items) > 0 {
		newest = &items[0]
	}

	for _, item := range items {
		if !item.PublishedAt.After(cursor) {
			continue
		}

		// Defense in depth against clock skew and re-fetches: the
		// sent ledger wins over the timestamp filter.
		sent, err := s.notifications.IsSent(ctx, p.ID(), item.ID)
		if err != nil {
			res.Err = fmt.Errorf("check sent ledger: %w", err)
			return res
		}
		if sent {
			logger.Debug("item already delivered", "content_id", item.ID)
			continue
		}

		res.New = append(res.New, item)
	}

	logger.Info("source checked", "fetched", res.Fetched, "new", len(res.New))

	if len(res.New) > 0 {
		res.Dispatched, res.Failed = s.dispatcher.DispatchBatch(ctx, p.ID(), res.New, p.FormatNotification)
	}

	return res
}
