package clashroyale

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/resilience"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

const defaultBaseURL = "https://api.clashroyale.com/v1"

// ErrNotConfigured is returned when no API token is available. The HTTP
// layer maps it to a server configuration error, not a user error.
var ErrNotConfigured = stderrors.New("clash royale api token is not configured")

var errClashRoyaleTransient = crerr.New("clash royale transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client proxies the Clash Royale player API. Responses are relayed
// verbatim with the upstream status so callers can pass them through.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// PlayerResult is the upstream response, untouched.
type PlayerResult struct {
	Status int
	Body   []byte
}

func (c *Client) FetchPlayer(ctx context.Context, tag string) (PlayerResult, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return PlayerResult{}, fmt.Errorf("player tag is required")
	}
	if c.token == "" {
		return PlayerResult{}, ErrNotConfigured
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "clash royale circuit breaker rejected request", "state", c.breaker.State())
			return PlayerResult{}, fmt.Errorf("%w: clash royale provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + "/players/" + url.PathEscape(tag)
	res, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errClashRoyaleTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return PlayerResult{}, err
	}
	return res, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) (PlayerResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return PlayerResult{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errClashRoyaleTransient, sanitizeToken(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errClashRoyaleTransient, readErr)
			} else if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < http.StatusInternalServerError {
				return PlayerResult{Status: resp.StatusCode, Body: raw}, nil
			} else {
				lastErr = fmt.Errorf("%w: provider status=%d", errClashRoyaleTransient, resp.StatusCode)
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
			return PlayerResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "clash royale request failed", "url", fullURL, "error", lastErr)
	return PlayerResult{}, lastErr
}

func sanitizeToken(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
