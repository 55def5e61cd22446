package gotrue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/user"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

const defaultUserPath = "/auth/v1/user"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	CacheTTL   time.Duration
	CacheSize  int
	Logger     *slog.Logger
}

// Client resolves access tokens against a GoTrue user endpoint.
// Verified principals are cached briefly keyed by token hash, so one
// page load does not introspect the same token once per request.
type Client struct {
	httpClient *http.Client
	userURL    string
	apiKey     string
	logger     *slog.Logger
	cache      *principalCache
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}

	return &Client{
		httpClient: httpClient,
		userURL:    strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/") + defaultUserPath,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		cache:      newPrincipalCache(ttl, size),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, fmt.Errorf("create user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("request user from gotrue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("read user response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "gotrue user lookup non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, fmt.Errorf("gotrue user lookup failed with status %d", resp.StatusCode)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal user response: %w", err)
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("invalid user response: id is empty")
	}

	principal := user.Principal{
		UserID: decoded.ID,
		Email:  decoded.Email,
	}
	c.cache.Set(cacheKey, principal)

	return principal, nil
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
