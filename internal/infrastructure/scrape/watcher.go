package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

const (
	defaultProfileBaseURL = "https://www.chess.com"
	userAgent             = "ChessTracker/1.0"
)

// liveLinkPattern matches anchors a profile page shows while its owner
// has a game running. Both link shapes appear in the wild depending on
// how the game was started.
var liveLinkPattern = regexp.MustCompile(`href="([^"]*/(?:game/live|play/online)[^"]*)"`)

type WatcherConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Watcher detects a running game by fetching a player's public profile
// page and scanning it for live-game links. The page markup belongs to
// a third party, so every failure reads as idle rather than an error.
type Watcher struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewWatcher(cfg WatcherConfig) *Watcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultProfileBaseURL
	}

	return &Watcher{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (w *Watcher) Watch(ctx context.Context, username string) (chess.LiveGame, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return chess.LiveGame{}, nil
	}

	pageURL := fmt.Sprintf("%s/member/%s", w.baseURL, url.PathEscape(username))
	body, ok := w.fetchPage(ctx, pageURL)
	if !ok {
		return chess.LiveGame{}, nil
	}

	match := liveLinkPattern.FindSubmatch(body)
	if match == nil {
		return chess.LiveGame{}, nil
	}

	gameURL := string(match[1])
	gameID := lastPathSegment(gameURL)
	if gameID == "" {
		return chess.LiveGame{}, nil
	}

	return chess.LiveGame{
		Playing: true,
		GameID:  gameID,
		URL:     gameURL,
	}, nil
}

func (w *Watcher) fetchPage(ctx context.Context, pageURL string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		w.logger.WarnContext(ctx, "scrape: build request failed", "url", pageURL, "error", err)
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.WarnContext(ctx, "scrape: profile page fetch failed", "url", pageURL, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.logger.WarnContext(ctx, "scrape: unexpected profile page status", "url", pageURL, "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		w.logger.WarnContext(ctx, "scrape: read profile page failed", "url", pageURL, "error", err)
		return nil, false
	}

	return body, true
}

func lastPathSegment(rawURL string) string {
	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	return trimmed
}
