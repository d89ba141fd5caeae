// Package rss polls a generic RSS 2.0 or Atom feed.
package rss

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"content_watcher/internal/backoff"
	"content_watcher/internal/domain"
)

const (
	SourceID   = "rss"
	SourceName = "RSS"
)

// Config holds RSS source configuration.
type Config struct {
	FeedURL string
	Title   string
	Timeout time.Duration
	Backoff backoff.Config
}

type Source struct {
	httpClient *http.Client
	feedURL    string
	title      string
	backoff    *backoff.Controller
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Source{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		feedURL:    cfg.FeedURL,
		title:      cfg.Title,
		backoff:    backoff.New(cfg.Backoff),
		logger:     logger.With("source", SourceID),
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	if s.title != "" {
		return s.title
	}
	return SourceName
}

// Configured reports whether a feed URL is set.
func (s *Source) Configured() bool {
	return s.feedURL != ""
}

// FetchLatest returns up to limit entries, most recent first. Feeds are
// not guaranteed to be ordered, so entries are sorted by publish time.
func (s *Source) FetchLatest(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	var items []domain.ContentItem
	err := s.backoff.Do(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.fetch(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Source) fetch(ctx context.Context) ([]domain.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", "ContentWatcher/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status 429", domain.ErrRateLimited)
	default:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var feed feed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return s.transform(&feed), nil
}

func (s *Source) transform(f *feed) []domain.ContentItem {
	entries := f.Channel.Items
	if len(entries) == 0 {
		entries = f.Entries
	}

	author := f.Channel.Title
	if author == "" {
		author = f.Title
	}
	if s.title != "" {
		author = s.title
	}

	items := make([]domain.ContentItem, 0, len(entries))
	for _, e := range entries {
		link := e.link()
		id := e.GUID
		if id == "" {
			id = e.AtomID
		}
		if id == "" {
			id = link
		}
		if id == "" {
			continue
		}

		published, ok := e.publishedAt()
		if !ok {
			s.logger.Warn("entry has no parseable publish time", "guid", id)
			continue
		}

		items = append(items, domain.ContentItem{
			SourceID:    SourceID,
			ID:          id,
			Title:       strings.TrimSpace(e.Title),
			URL:         link,
			Author:      author,
			PublishedAt: published,
		})
	}
	return items
}

// FormatNotification renders one feed entry announcement. Pure.
func (s *Source) FormatNotification(item domain.ContentItem) string {
	return fmt.Sprintf("📰 %s\n\n%s\n%s", item.Author, item.Title, item.URL)
}
