package lichess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const defaultBaseURL = "https://lichess.org"

var errLichessTransient = crerr.New("lichess transient failure")

type ImporterConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Importer submits PGNs to the lichess import endpoint and returns the
// URL of the imported game for analysis.
type Importer struct {
	client         *http.Client
	baseURL        string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewImporter(cfg ImporterConfig, logger *slog.Logger) *Importer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Importer{
		client:         &http.Client{Timeout: timeout},
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type importResponse struct {
	URL string `json:"url"`
}

func (i *Importer) Import(ctx context.Context, pgn string) (string, error) {
	if strings.TrimSpace(pgn) == "" {
		return "", crerr.New("pgn is required")
	}

	if i.circuitEnabled {
		if err := i.breaker.Allow(); err != nil {
			i.logger.WarnContext(ctx, "lichess circuit breaker rejected request", "state", i.breaker.State())
			return "", fmt.Errorf("lichess is temporarily unavailable: %w", err)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString("pgn=")
	_, _ = buf.WriteString(url.QueryEscape(pgn))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/api/import", strings.NewReader(buf.String()))
	if err != nil {
		return "", crerr.Wrap(err, "create import request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: submit pgn import: %v", errLichessTransient, err)
		i.recordCircuitResult(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		callErr := fmt.Errorf("%w: read import response: %v", errLichessTransient, err)
		i.recordCircuitResult(callErr)
		return "", callErr
	}

	if resp.StatusCode/100 != 2 {
		callErr := fmt.Errorf("pgn import status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
		if isRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: pgn import status=%d", errLichessTransient, resp.StatusCode)
		}
		i.recordCircuitResult(callErr)
		return "", callErr
	}

	var decoded importResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		i.recordCircuitResult(nil)
		return "", crerr.Wrap(err, "decode import response")
	}
	if strings.TrimSpace(decoded.URL) == "" {
		i.recordCircuitResult(nil)
		return "", crerr.New("import response carries no game url")
	}

	i.logger.InfoContext(ctx, "pgn imported to lichess", "url", decoded.URL)
	i.recordCircuitResult(nil)
	return decoded.URL, nil
}

func (i *Importer) recordCircuitResult(err error) {
	if !i.circuitEnabled || i.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errLichessTransient) {
		i.breaker.RecordFailure()
		return
	}
	i.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
