package chesscom

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/resilience"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

const (
	defaultBaseURL         = "https://api.chess.com/pub"
	defaultCallbackBaseURL = "https://www.chess.com"
	userAgent              = "ChessTracker/1.0"
)

var errChessComTransient = crerr.New("chess.com transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	CallbackBaseURL string
	Timeout         time.Duration
	MaxRetries      int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client talks to the public chess API. Not-found is a normal outcome
// for most lookups, so non-retryable upstream statuses are returned as
// data rather than errors and each fetch method maps them itself.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	callbackBaseURL string
	maxRetries      int
	logger          *logging.Logger
	breaker         *resilience.CircuitBreaker
	circuitEnabled  bool
	flight          resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	callbackBaseURL := strings.TrimRight(strings.TrimSpace(cfg.CallbackBaseURL), "/")
	if callbackBaseURL == "" {
		callbackBaseURL = defaultCallbackBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:      httpClient,
		baseURL:         baseURL,
		callbackBaseURL: callbackBaseURL,
		maxRetries:      maxInt(cfg.MaxRetries, 0),
		logger:          logger,
		breaker:         resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:  breakerCfg.Enabled,
	}
}

func (c *Client) FetchProfile(ctx context.Context, username string) (chess.Profile, bool, error) {
	username = normalizeUsername(username)
	if username == "" {
		return chess.Profile{}, false, fmt.Errorf("username is required")
	}

	res, err := c.get(ctx, c.baseURL+"/player/"+url.PathEscape(username))
	if err != nil {
		return chess.Profile{}, false, fmt.Errorf("fetch profile username=%s: %w", username, err)
	}
	if !res.ok() {
		return chess.Profile{}, false, nil
	}

	var payload profilePayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return chess.Profile{}, false, fmt.Errorf("decode profile payload: %w", err)
	}

	avatar := strings.TrimSpace(payload.Avatar)
	if avatar == "" {
		avatar = chess.DefaultAvatarURL
	}

	return chess.Profile{
		Username:   strings.TrimSpace(payload.Username),
		AvatarURL:  avatar,
		Country:    strings.TrimSpace(payload.Country),
		ProfileURL: strings.TrimSpace(payload.URL),
		LastOnline: payload.LastOnline,
	}, true, nil
}

func (c *Client) FetchStats(ctx context.Context, username string) (chess.Stats, error) {
	username = normalizeUsername(username)
	if username == "" {
		return emptyStats(), fmt.Errorf("username is required")
	}

	res, err := c.get(ctx, c.baseURL+"/player/"+url.PathEscape(username)+"/stats")
	if err != nil {
		return emptyStats(), fmt.Errorf("fetch stats username=%s: %w", username, err)
	}
	if !res.ok() {
		// Missing stats are not an error: every mode reads as unrated.
		return emptyStats(), nil
	}

	var payload statsPayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return emptyStats(), fmt.Errorf("decode stats payload: %w", err)
	}

	return chess.Stats{
		Rapid:  payload.ChessRapid.modeRating(),
		Blitz:  payload.ChessBlitz.modeRating(),
		Bullet: payload.ChessBullet.modeRating(),
	}, nil
}

func (c *Client) FetchArchiveIndex(ctx context.Context, username string) ([]string, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	res, err := c.get(ctx, c.baseURL+"/player/"+url.PathEscape(username)+"/games/archives")
	if err != nil {
		return nil, fmt.Errorf("fetch archive index username=%s: %w", username, err)
	}
	if !res.ok() {
		return nil, nil
	}

	var payload archivesPayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return nil, fmt.Errorf("decode archive index payload: %w", err)
	}
	return payload.Archives, nil
}

func (c *Client) FetchArchiveGames(ctx context.Context, archiveURL string) ([]usecase.ExternalGame, error) {
	archiveURL = strings.TrimSpace(archiveURL)
	if archiveURL == "" {
		return nil, fmt.Errorf("archive url is required")
	}

	res, err := c.get(ctx, archiveURL)
	if err != nil {
		return nil, fmt.Errorf("fetch archive games: %w", err)
	}
	if !res.ok() {
		return nil, nil
	}

	var payload archiveGamesPayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return nil, fmt.Errorf("decode archive games payload: %w", err)
	}

	out := make([]usecase.ExternalGame, 0, len(payload.Games))
	for _, item := range payload.Games {
		out = append(out, usecase.ExternalGame{
			URL:       item.URL,
			EndTime:   item.EndTime,
			TimeClass: item.TimeClass,
			White:     usecase.ExternalGameSide{Username: item.White.Username, Rating: item.White.Rating, Result: item.White.Result},
			Black:     usecase.ExternalGameSide{Username: item.Black.Username, Rating: item.Black.Rating, Result: item.Black.Result},
		})
	}
	return out, nil
}

func (c *Client) FetchGameRatingDelta(ctx context.Context, gameID, username string) (int, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return 0, fmt.Errorf("game id is required")
	}

	res, err := c.get(ctx, c.baseURL+"/game/"+url.PathEscape(gameID))
	if err != nil {
		return 0, fmt.Errorf("fetch game detail game_id=%s: %w", gameID, err)
	}
	if !res.ok() {
		return 0, nil
	}

	var payload gameDetailPayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return 0, fmt.Errorf("decode game detail payload: %w", err)
	}

	side := payload.Black
	if strings.EqualFold(payload.White.Username, strings.TrimSpace(username)) {
		side = payload.White
	}
	return side.RatingAdjustment, nil
}

func (c *Client) FetchMonthlyPGN(ctx context.Context, username, year, month string) (string, bool, error) {
	username = normalizeUsername(username)
	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)
	if username == "" || year == "" || month == "" {
		return "", false, fmt.Errorf("username, year and month are required")
	}
	if len(month) == 1 {
		month = "0" + month
	}

	fullURL := c.baseURL + "/player/" + url.PathEscape(username) + "/games/" + url.PathEscape(year) + "/" + url.PathEscape(month) + "/pgn"
	res, err := c.get(ctx, fullURL)
	if err != nil {
		return "", false, fmt.Errorf("fetch monthly pgn username=%s year=%s month=%s: %w", username, year, month, err)
	}
	if !res.ok() {
		return "", false, nil
	}
	return string(res.raw), true, nil
}

func (c *Client) FetchCallbackGame(ctx context.Context, gameID string) (chess.GamePGN, bool, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return chess.GamePGN{}, false, fmt.Errorf("game id is required")
	}

	res, err := c.get(ctx, c.callbackBaseURL+"/callback/live/game/"+url.PathEscape(gameID))
	if err != nil {
		return chess.GamePGN{}, false, fmt.Errorf("fetch callback game game_id=%s: %w", gameID, err)
	}
	if !res.ok() {
		return chess.GamePGN{}, false, nil
	}

	var payload callbackGamePayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return chess.GamePGN{}, false, fmt.Errorf("decode callback game payload: %w", err)
	}
	if strings.TrimSpace(payload.Game.PGN) == "" {
		return chess.GamePGN{}, false, nil
	}

	return chess.GamePGN{
		PGN:   payload.Game.PGN,
		White: payload.Game.White.Username,
		Black: payload.Game.Black.Username,
	}, true, nil
}

func (c *Client) FetchIsOnline(ctx context.Context, username string) (bool, error) {
	username = normalizeUsername(username)
	if username == "" {
		return false, fmt.Errorf("username is required")
	}

	res, err := c.get(ctx, c.baseURL+"/player/"+url.PathEscape(username)+"/is-online")
	if err != nil {
		return false, fmt.Errorf("fetch online flag username=%s: %w", username, err)
	}
	if !res.ok() {
		return false, nil
	}

	var payload onlineStatusPayload
	if err := sonic.Unmarshal(res.raw, &payload); err != nil {
		return false, fmt.Errorf("decode online flag payload: %w", err)
	}
	return strings.EqualFold(payload.Status, "online"), nil
}

type fetchResult struct {
	status int
	raw    []byte
}

func (r fetchResult) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *Client) get(ctx context.Context, fullURL string) (fetchResult, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "chess.com circuit breaker rejected request", "state", c.breaker.State())
			return fetchResult{}, fmt.Errorf("%w: chess data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		res, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isChessComCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return res, reqErr
	})
	if err != nil {
		return fetchResult{}, err
	}

	res, ok := out.(fetchResult)
	if !ok {
		return fetchResult{}, fmt.Errorf("unexpected response payload type %T", out)
	}
	return res, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) (fetchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fetchResult{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errChessComTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errChessComTransient, readErr)
			} else if !isRetryableStatus(resp.StatusCode) {
				// Includes 2xx and terminal 4xx. Callers map the status.
				return fetchResult{status: resp.StatusCode, raw: raw}, nil
			} else {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errChessComTransient, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fetchResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "chess.com request failed", "url", fullURL, "error", lastErr)
	return fetchResult{}, lastErr
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func emptyStats() chess.Stats {
	unrated := chess.ModeRating{Current: chess.RatingUnknown, Best: chess.RatingUnknown}
	return chess.Stats{Rapid: unrated, Blitz: unrated, Bullet: unrated}
}

func isChessComCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errChessComTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
