package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"content_watcher/internal/backoff"
	"content_watcher/internal/domain"
)

const (
	SourceID   = "instagram"
	SourceName = "Instagram"

	defaultBaseURL = "https://i.instagram.com/api/v1/users/web_profile_info/"
	postURL        = "https://www.instagram.com/p/%s/"

	// Instagram's web API rejects requests without a browser-looking agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	appID     = "936619743392459"
)

// Config holds Instagram source configuration.
type Config struct {
	Username  string
	SessionID string
	BaseURL   string
	Timeout   time.Duration
	Backoff   backoff.Config
}

// Source polls a profile's feed through the web profile endpoint. The
// endpoint rate-limits aggressively, so every fetch goes through the
// backoff controller's retry path.
type Source struct {
	httpClient *http.Client
	baseURL    string
	username   string
	sessionID  string
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
		username:   cfg.Username,
		sessionID:  cfg.SessionID,
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

// Configured reports whether the profile to watch is set.
func (s *Source) Configured() bool {
	return s.username != ""
}

// FetchLatest returns up to limit posts, most recent first.
func (s *Source) FetchLatest(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	var resp *profileResponse
	err := s.backoff.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = s.fetch(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := s.transform(resp)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Source) fetch(ctx context.Context) (*profileResponse, error) {
	q := url.Values{}
	q.Set("username", s.username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", appID)
	req.Header.Set("Accept", "application/json")
	if s.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: s.sessionID})
	}

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

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &profile, nil
}

func (s *Source) transform(resp *profileResponse) []domain.ContentItem {
	edges := resp.Data.User.Media.Edges
	items := make([]domain.ContentItem, 0, len(edges))

	author := resp.Data.User.FullName
	if author == "" {
		author = resp.Data.User.Username
	}

	for _, e := range edges {
		n := e.Node
		if n.Shortcode == "" {
			continue
		}
		items = append(items, domain.ContentItem{
			SourceID:    SourceID,
			ID:          n.Shortcode,
			Title:       firstLine(n.captionText()),
			URL:         fmt.Sprintf(postURL, n.Shortcode),
			Author:      author,
			PublishedAt: time.Unix(n.TakenAt, 0).UTC(),
		})
	}
	return items
}

// FormatNotification renders one post announcement. Pure.
func (s *Source) FormatNotification(item domain.ContentItem) string {
	caption := item.Title
	if caption == "" {
		caption = "New post"
	}
	return fmt.Sprintf("📸 %s posted on Instagram\n\n%s\n%s", item.Author, caption, item.URL)
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const max = 200
	if len(text) > max {
		text = text[:max] + "…"
	}
	return text
}
