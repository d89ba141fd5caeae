// Package dispatcher delivers rendered content items to the downstream
// channel, strictly sequentially, and records successful sends.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"content_watcher/internal/domain"
)

// Channel is the downstream destination. Send returns the
// channel-assigned message identifier.
type Channel interface {
	Send(ctx context.Context, text string) (string, error)
}

// Recorder persists delivered notifications.
type Recorder interface {
	RecordSent(ctx context.Context, sourceID, contentID, contentURL, externalMessageID string) error
}

// EventPublisher receives a best-effort event per delivered item.
type EventPublisher interface {
	PublishSent(ctx context.Context, item *domain.ContentItem, externalMessageID string) error
}

type Dispatcher struct {
	channel  Channel
	recorder Recorder
	events   EventPublisher // nil when the event feed is disabled
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New builds a dispatcher. messageDelay is the minimum gap between
// consecutive channel sends; the limiter starts with a full token, so
// a lone message goes out immediately.
func New(channel Channel, recorder Recorder, events EventPublisher, messageDelay time.Duration, logger *slog.Logger) *Dispatcher {
	if messageDelay <= 0 {
		messageDelay = 2 * time.Second
	}
	return &Dispatcher{
		channel:  channel,
		recorder: recorder,
		events:   events,
		limiter:  rate.NewLimiter(rate.Every(messageDelay), 1),
		logger:   logger,
	}
}

// DispatchBatch sends items one by one, oldest first. A failed item is
// logged and left unrecorded (eligible for the next cycle); the rest of
// the batch continues.
func (d *Dispatcher) DispatchBatch(ctx context.Context, sourceID string, items []domain.ContentItem, render func(domain.ContentItem) string) (sent, failed int) {
	// Items arrive most-recent-first; deliver in publish order.
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]

		if err := d.limiter.Wait(ctx); err != nil {
			d.logger.Warn("dispatch interrupted", "source", sourceID, "remaining", i+1, "error", err)
			failed += i + 1
			return sent, failed
		}

		if err := d.sendItem(ctx, sourceID, &item, render); err != nil {
			d.logger.Error("failed to dispatch item",
				"source", sourceID,
				"content_id", item.ID,
				"error", err,
			)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func (d *Dispatcher) sendItem(ctx context.Context, sourceID string, item *domain.ContentItem, render func(domain.ContentItem) string) error {
	messageID, err := d.channel.Send(ctx, render(*item))
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	// Recorded immediately after the send. A failed record leaves the
	// item eligible for redelivery, which the design prefers to a
	// silently lost one.
	if err := d.recorder.RecordSent(ctx, sourceID, item.ID, item.URL, messageID); err != nil {
		d.logger.Error("sent but failed to record",
			"source", sourceID,
			"content_id", item.ID,
			"error", err,
		)
	}

	if d.events != nil {
		if err := d.events.PublishSent(ctx, item, messageID); err != nil {
			d.logger.Warn("failed to publish notification event",
				"source", sourceID,
				"content_id", item.ID,
				"error", err,
			)
		}
	}

	d.logger.Info("notification sent",
		"source", sourceID,
		"content_id", item.ID,
		"message_id", messageID,
	)
	return nil
}

// SendRaw delivers a plain message, bypassing the sent ledger. Used for
// cycle summaries and lifecycle announcements.
func (d *Dispatcher) SendRaw(ctx context.Context, text string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := d.channel.Send(ctx, text); err != nil {
		return fmt.Errorf("send raw: %w", err)
	}
	return nil
}
