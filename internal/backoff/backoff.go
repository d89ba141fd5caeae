// Package backoff paces a single poller's outbound requests. Each
// poller owns one Controller; state is never shared across sources.
package backoff

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"content_watcher/internal/domain"
)

const maxRateLimitAttempts = 3

// Config tunes a Controller. Zero values fall back to defaults.
type Config struct {
	// BaseDelay is the minimum gap between requests before failure
	// scaling kicks in.
	BaseDelay time.Duration
	// RateLimitWaits are the escalating waits between rate-limit
	// retries. Distinct from BaseDelay.
	RateLimitWaits []time.Duration
}

// Controller tracks a poller's failure count and last request time and
// derives the wait before the next attempt as BaseDelay * 2^failures.
type Controller struct {
	mu             sync.Mutex
	baseDelay      time.Duration
	rateLimitWaits []time.Duration
	failures       int
	lastRequest    time.Time
}

func New(cfg Config) *Controller {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if len(cfg.RateLimitWaits) == 0 {
		cfg.RateLimitWaits = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second}
	}
	return &Controller{
		baseDelay:      cfg.BaseDelay,
		rateLimitWaits: cfg.RateLimitWaits,
	}
}

// Failures returns the current consecutive failure count.
func (c *Controller) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// NextDelay returns the minimum gap required before the next request.
func (c *Controller) NextDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delayLocked()
}

func (c *Controller) delayLocked() time.Duration {
	delay := c.baseDelay
	for i := 0; i < c.failures; i++ {
		delay *= 2
	}
	return delay
}

// Wait blocks until the inter-request delay since the last request has
// elapsed, then stamps the request time.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	wait := time.Until(c.lastRequest.Add(c.delayLocked()))
	c.mu.Unlock()

	if wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	c.mu.Lock()
	c.lastRequest = time.Now()
	c.mu.Unlock()
	return nil
}

// Do runs fn with rate-limit retries. Rate-limit failures are retried
// up to the attempt bound with escalating waits; any other failure
// grows the inter-request delay and is returned immediately. Success
// resets the failure count.
func (c *Controller) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxRateLimitAttempts; attempt++ {
		if err = c.Wait(ctx); err != nil {
			return err
		}

		err = fn(ctx)
		if err == nil {
			c.mu.Lock()
			c.failures = 0
			c.mu.Unlock()
			return nil
		}

		if !errors.Is(err, domain.ErrRateLimited) {
			c.mu.Lock()
			c.failures++
			c.mu.Unlock()
			return err
		}

		if attempt == maxRateLimitAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.rateLimitWait(attempt)):
		}
	}

	c.mu.Lock()
	c.failures++
	c.mu.Unlock()
	return fmt.Errorf("after %d rate-limited attempts: %w", maxRateLimitAttempts, err)
}

func (c *Controller) rateLimitWait(attempt int) time.Duration {
	idx := attempt - 1
	if idx >= len(c.rateLimitWaits) {
		idx = len(c.rateLimitWaits) - 1
	}
	return c.rateLimitWaits[idx]
}
