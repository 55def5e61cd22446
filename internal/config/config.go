package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	DBURL                         string
	DBDisablePreparedBinary       bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	GoTrueBaseURL                 string
	GoTrueAPIKey                  string
	GoTrueTimeout                 time.Duration
	GoTrueCacheTTL                time.Duration
	GoTrueCacheSize               int
	UptraceEnabled                bool
	UptraceDSN                    string
	UptraceLogsEnabled            bool
	UptraceCaptureRequestBody     bool
	UptraceRequestBodyMaxBytes    int
	BetterStackEnabled            bool
	BetterStackEndpoint           string
	BetterStackToken              string
	BetterStackTimeout            time.Duration
	BetterStackMinLevel           logging.Level
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	ChessComBaseURL               string
	ChessComCallbackBaseURL       string
	ChessComTimeout               time.Duration
	ChessComMaxRetries            int
	ChessComCircuitEnabled        bool
	ChessComCircuitFailureCount   int
	ChessComCircuitOpenTimeout    time.Duration
	ChessComCircuitHalfOpenMaxReq int
	ClashRoyaleBaseURL            string
	ClashRoyaleToken              string
	ClashRoyaleTimeout            time.Duration
	ClashRoyaleMaxRetries         int
	ClashRoyaleCircuitEnabled     bool
	LichessBaseURL                string
	LichessTimeout                time.Duration
	LichessCircuitEnabled         bool
	ScrapeBaseURL                 string
	ScrapeTimeout                 time.Duration
	StatsWorkerCount              int
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	chessComTimeout, err := time.ParseDuration(getEnv("CHESSCOM_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_TIMEOUT: %w", err)
	}
	if chessComTimeout <= 0 {
		return Config{}, fmt.Errorf("CHESSCOM_TIMEOUT must be > 0")
	}
	chessComMaxRetries, err := getEnvAsInt("CHESSCOM_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_MAX_RETRIES: %w", err)
	}
	if chessComMaxRetries < 0 {
		return Config{}, fmt.Errorf("CHESSCOM_MAX_RETRIES must be >= 0")
	}
	chessComCircuitEnabled, err := strconv.ParseBool(getEnv("CHESSCOM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_CIRCUIT_ENABLED: %w", err)
	}
	chessComCircuitFailureCount, err := getEnvAsInt("CHESSCOM_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if chessComCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CHESSCOM_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	chessComCircuitOpenTimeout, err := time.ParseDuration(getEnv("CHESSCOM_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if chessComCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CHESSCOM_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	chessComCircuitHalfOpenMaxReq, err := getEnvAsInt("CHESSCOM_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHESSCOM_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if chessComCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CHESSCOM_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	clashRoyaleTimeout, err := time.ParseDuration(getEnv("CLASH_ROYALE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CLASH_ROYALE_TIMEOUT: %w", err)
	}
	if clashRoyaleTimeout <= 0 {
		return Config{}, fmt.Errorf("CLASH_ROYALE_TIMEOUT must be > 0")
	}
	clashRoyaleMaxRetries, err := getEnvAsInt("CLASH_ROYALE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse CLASH_ROYALE_MAX_RETRIES: %w", err)
	}
	if clashRoyaleMaxRetries < 0 {
		return Config{}, fmt.Errorf("CLASH_ROYALE_MAX_RETRIES must be >= 0")
	}
	clashRoyaleCircuitEnabled, err := strconv.ParseBool(getEnv("CLASH_ROYALE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CLASH_ROYALE_CIRCUIT_ENABLED: %w", err)
	}

	lichessTimeout, err := time.ParseDuration(getEnv("LICHESS_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LICHESS_TIMEOUT: %w", err)
	}
	if lichessTimeout <= 0 {
		return Config{}, fmt.Errorf("LICHESS_TIMEOUT must be > 0")
	}
	lichessCircuitEnabled, err := strconv.ParseBool(getEnv("LICHESS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LICHESS_CIRCUIT_ENABLED: %w", err)
	}

	scrapeTimeout, err := time.ParseDuration(getEnv("SCRAPE_TIMEOUT", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_TIMEOUT: %w", err)
	}
	if scrapeTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPE_TIMEOUT must be > 0")
	}

	statsWorkerCount, err := getEnvAsInt("STATS_WORKER_COUNT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_WORKER_COUNT: %w", err)
	}
	if statsWorkerCount < 1 {
		return Config{}, fmt.Errorf("STATS_WORKER_COUNT must be >= 1")
	}

	goTrueTimeout, err := time.ParseDuration(getEnv("GOTRUE_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_TIMEOUT: %w", err)
	}
	if goTrueTimeout <= 0 {
		return Config{}, fmt.Errorf("GOTRUE_TIMEOUT must be > 0")
	}
	goTrueCacheTTL, err := time.ParseDuration(getEnv("GOTRUE_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CACHE_TTL: %w", err)
	}
	if goTrueCacheTTL <= 0 {
		return Config{}, fmt.Errorf("GOTRUE_CACHE_TTL must be > 0")
	}
	goTrueCacheSize, err := getEnvAsInt("GOTRUE_CACHE_SIZE", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CACHE_SIZE: %w", err)
	}
	if goTrueCacheSize < 1 {
		return Config{}, fmt.Errorf("GOTRUE_CACHE_SIZE must be >= 1")
	}
	goTrueBaseURL := strings.TrimSpace(getEnv("GOTRUE_URL", ""))
	goTrueAPIKey := strings.TrimSpace(getEnv("GOTRUE_API_KEY", ""))
	if appEnv == EnvProd && goTrueBaseURL == "" {
		return Config{}, fmt.Errorf("GOTRUE_URL is required when APP_ENV=prod")
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "chess-tracker-api"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                         getEnv("DB_URL", ""),
		DBDisablePreparedBinary:       true,
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		GoTrueBaseURL:                 goTrueBaseURL,
		GoTrueAPIKey:                  goTrueAPIKey,
		GoTrueTimeout:                 goTrueTimeout,
		GoTrueCacheTTL:                goTrueCacheTTL,
		GoTrueCacheSize:               goTrueCacheSize,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		UptraceLogsEnabled:            uptraceLogsEnabled,
		UptraceCaptureRequestBody:     uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes:    uptraceRequestBodyMaxBytes,
		BetterStackEnabled:            betterStackEnabled,
		BetterStackEndpoint:           betterStackEndpoint,
		BetterStackToken:              strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:            betterStackTimeout,
		BetterStackMinLevel:           betterStackMinLevel,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
		ChessComBaseURL:               strings.TrimSpace(getEnv("CHESSCOM_BASE_URL", "https://api.chess.com/pub")),
		ChessComCallbackBaseURL:       strings.TrimSpace(getEnv("CHESSCOM_CALLBACK_BASE_URL", "https://www.chess.com")),
		ChessComTimeout:               chessComTimeout,
		ChessComMaxRetries:            chessComMaxRetries,
		ChessComCircuitEnabled:        chessComCircuitEnabled,
		ChessComCircuitFailureCount:   chessComCircuitFailureCount,
		ChessComCircuitOpenTimeout:    chessComCircuitOpenTimeout,
		ChessComCircuitHalfOpenMaxReq: chessComCircuitHalfOpenMaxReq,
		ClashRoyaleBaseURL:            strings.TrimSpace(getEnv("CLASH_ROYALE_BASE_URL", "https://api.clashroyale.com/v1")),
		ClashRoyaleToken:              strings.TrimSpace(getEnv("CLASH_ROYALE_API_TOKEN", "")),
		ClashRoyaleTimeout:            clashRoyaleTimeout,
		ClashRoyaleMaxRetries:         clashRoyaleMaxRetries,
		ClashRoyaleCircuitEnabled:     clashRoyaleCircuitEnabled,
		LichessBaseURL:                strings.TrimSpace(getEnv("LICHESS_BASE_URL", "https://lichess.org")),
		LichessTimeout:                lichessTimeout,
		LichessCircuitEnabled:         lichessCircuitEnabled,
		ScrapeBaseURL:                 strings.TrimSpace(getEnv("SCRAPE_BASE_URL", "https://www.chess.com")),
		ScrapeTimeout:                 scrapeTimeout,
		StatsWorkerCount:              statsWorkerCount,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = logLevel

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
