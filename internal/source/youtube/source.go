package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"content_watcher/internal/backoff"
	"content_watcher/internal/domain"
)

const (
	SourceID   = "youtube"
	SourceName = "YouTube"

	defaultBaseURL = "https://www.googleapis.com/youtube/v3/search"
	watchURL       = "https://www.youtube.com/watch?v=%s"
)

// Config holds YouTube source configuration.
type Config struct {
	APIKey    string
	ChannelID string
	BaseURL   string
	Timeout   time.Duration
	Backoff   backoff.Config
}

// Source polls a channel's uploads through the YouTube Data API.
type Source struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	channelID  string
	backoff    *backoff.Controller
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Source{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		channelID:  cfg.ChannelID,
		backoff:    backoff.New(cfg.Backoff),
		logger:     logger.With("source", SourceID),
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	return SourceName
}

// Configured reports whether the minimum credentials are present.
func (s *Source) Configured() bool {
	return s.apiKey != "" && s.channelID != ""
}

// FetchLatest returns up to limit videos, most recent first. An empty
// channel is not an error.
func (s *Source) FetchLatest(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	var resp *searchResponse
	err := s.backoff.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = s.fetch(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.transform(resp.Items), nil
}

func (s *Source) fetch(ctx context.Context, limit int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("channelId", s.channelID)
	q.Set("part", "snippet,id")
	q.Set("order", "date")
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprint(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		// 403 here is almost always quota exhaustion.
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRateLimited, resp.StatusCode, ae.Error.Message)
	default:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &searchResp, nil
}

func (s *Source) transform(items []searchItem) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(items))
	for _, it := range items {
		if it.ID.VideoID == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		if err != nil {
			s.logger.Warn("failed to parse publish time",
				"video_id", it.ID.VideoID,
				"published_at", it.Snippet.PublishedAt,
			)
			continue
		}

		out = append(out, domain.ContentItem{
			SourceID:    SourceID,
			ID:          it.ID.VideoID,
			Title:       html.UnescapeString(it.Snippet.Title),
			URL:         fmt.Sprintf(watchURL, it.ID.VideoID),
			Author:      it.Snippet.ChannelTitle,
			PublishedAt: publishedAt,
		})
	}
	return out
}

// FormatNotification renders one video announcement. Pure.
func (s *Source) FormatNotification(item domain.ContentItem) string {
	return fmt.Sprintf("🎬 New video from %s\n\n%s\n%s", item.Author, item.Title, item.URL)
}
