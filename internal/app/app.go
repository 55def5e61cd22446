package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"

	"github.com/ewenguilhot8-netizen/chess-tracker/external/chesscom"
	"github.com/ewenguilhot8-netizen/chess-tracker/external/clashroyale"
	"github.com/ewenguilhot8-netizen/chess-tracker/external/lichess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/config"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/profile"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/account/gotrue"
	cacherepo "github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/repository/cache"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/repository/memory"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/repository/postgres"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/scrape"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/interfaces/httpapi"
	basecache "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/cache"
	idgen "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/id"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/resilience"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

// NewHTTPServer wires repositories, upstream clients and services into
// a ready-to-run HTTP server. The returned closer releases the database
// handle; it is a no-op when no DB_URL is configured and the in-memory
// repositories are used instead.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if appLogger == nil {
		appLogger = logging.Default()
	}

	var (
		db          *sqlx.DB
		boardRepo   board.Repository
		memberRepo  board.MemberRepository
		messageRepo board.MessageRepository
		profileRepo profile.Repository
	)

	if cfg.DBURL != "" {
		opened, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		boardRepo = postgres.NewBoardRepository(db)
		memberRepo = postgres.NewBoardMemberRepository(db)
		messageRepo = postgres.NewBoardMessageRepository(db)
		profileRepo = postgres.NewProfileRepository(db)
	} else {
		logger.Warn("DB_URL is empty, using in-memory repositories")
		boardRepo = memory.NewBoardRepository()
		memberRepo = memory.NewBoardMemberRepository()
		messageRepo = memory.NewBoardMessageRepository()
		profileRepo = memory.NewProfileRepository()
	}

	var statsStore *basecache.Store
	if cfg.CacheEnabled {
		statsStore = basecache.NewStore(cfg.CacheTTL)
		repoCache := basecache.NewStore(cfg.CacheTTL)
		boardRepo = cacherepo.NewBoardRepository(boardRepo, repoCache)
		memberRepo = cacherepo.NewMemberRepository(memberRepo, repoCache)
	}

	chessClient := chesscom.NewClient(chesscom.ClientConfig{
		BaseURL:         cfg.ChessComBaseURL,
		CallbackBaseURL: cfg.ChessComCallbackBaseURL,
		Timeout:         cfg.ChessComTimeout,
		MaxRetries:      cfg.ChessComMaxRetries,
		Logger:          appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ChessComCircuitEnabled,
			FailureThreshold: cfg.ChessComCircuitFailureCount,
			OpenTimeout:      cfg.ChessComCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ChessComCircuitHalfOpenMaxReq,
		},
	})

	clashClient := clashroyale.NewClient(clashroyale.ClientConfig{
		BaseURL:    cfg.ClashRoyaleBaseURL,
		Token:      cfg.ClashRoyaleToken,
		Timeout:    cfg.ClashRoyaleTimeout,
		MaxRetries: cfg.ClashRoyaleMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: cfg.ClashRoyaleCircuitEnabled,
		},
	})

	importer := lichess.NewImporter(lichess.ImporterConfig{
		BaseURL: cfg.LichessBaseURL,
		Timeout: cfg.LichessTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: cfg.LichessCircuitEnabled,
		},
	}, logger)

	watcher := scrape.NewWatcher(scrape.WatcherConfig{
		BaseURL: cfg.ScrapeBaseURL,
		Timeout: cfg.ScrapeTimeout,
		Logger:  appLogger,
	})

	verifier := gotrue.NewClient(gotrue.ClientConfig{
		BaseURL:   cfg.GoTrueBaseURL,
		APIKey:    cfg.GoTrueAPIKey,
		CacheTTL:  cfg.GoTrueCacheTTL,
		CacheSize: cfg.GoTrueCacheSize,
		Logger:    logger,
		HTTPClient: &http.Client{
			Timeout: cfg.GoTrueTimeout,
		},
	})

	statsSvc := usecase.NewStatsService(chessClient, statsStore, appLogger, cfg.StatsWorkerCount)
	presenceSvc := usecase.NewPresenceService(chessClient, appLogger)
	gameSvc := usecase.NewGameService(chessClient, chesscom.ExtractGameFromArchive, importer, appLogger)
	versusSvc := usecase.NewVersusService(statsSvc)
	liveGameSvc := usecase.NewLiveGameService(watcher, appLogger)
	boardSvc := usecase.NewBoardService(boardRepo, memberRepo, messageRepo, idgen.NewRandomGenerator())
	profileSvc := usecase.NewProfileService(profileRepo, chessClient)

	handler := httpapi.NewHandler(
		statsSvc,
		presenceSvc,
		gameSvc,
		versusSvc,
		liveGameSvc,
		boardSvc,
		profileSvc,
		clashClient,
		appLogger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeDB(db, logger)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	closer := func(context.Context) error {
		if db == nil {
			return nil
		}
		return db.Close()
	}

	return server, closer, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		attrs = append(attrs, attribute.String("db.name", name))
	}

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attrs...),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func closeDB(db *sqlx.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database", "error", err)
	}
}
