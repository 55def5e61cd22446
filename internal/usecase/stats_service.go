package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/cache"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

const (
	recentGamesCap           = 30
	defaultDeltaWorkerCount  = 8
	playerDetailsCachePrefix = "player-details:"
)

type StatsService struct {
	provider    ChessProvider
	store       *cache.Store
	logger      *logging.Logger
	workerCount int
}

func NewStatsService(provider ChessProvider, store *cache.Store, logger *logging.Logger, workerCount int) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount < 1 {
		workerCount = defaultDeltaWorkerCount
	}
	return &StatsService{
		provider:    provider,
		store:       store,
		logger:      logger,
		workerCount: workerCount,
	}
}

// PlayerSummary resolves the profile card for one player. An unknown
// username maps to ErrNotFound.
func (s *StatsService) PlayerSummary(ctx context.Context, username string) (chess.PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerSummary")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return chess.PlayerSummary{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	profile, found, err := s.provider.FetchProfile(ctx, username)
	if err != nil {
		return chess.PlayerSummary{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !found {
		return chess.PlayerSummary{}, fmt.Errorf("%w: player %q", ErrNotFound, username)
	}

	stats, err := s.provider.FetchStats(ctx, username)
	if err != nil {
		// Ratings degrade to the unknown sentinel, the card still renders.
		s.logger.WarnContext(ctx, "fetch stats failed, serving profile without ratings", "username", username, "error", err)
		stats = chess.Stats{}
	}

	return buildSummary(profile, stats), nil
}

// PlayerDetails runs the aggregation pipeline: summary, most recent
// monthly archive, per-game rating deltas fetched concurrently. Results
// are cached briefly since a dashboard refresh triggers the same
// fan-out again.
func (s *StatsService) PlayerDetails(ctx context.Context, username string) (chess.PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerDetails")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return chess.PlayerDetails{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if s.store == nil {
		return s.loadPlayerDetails(ctx, username)
	}

	key := playerDetailsCachePrefix + strings.ToLower(username)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.loadPlayerDetails(ctx, username)
	})
	if err != nil {
		return chess.PlayerDetails{}, err
	}

	details, ok := value.(chess.PlayerDetails)
	if !ok {
		return chess.PlayerDetails{}, fmt.Errorf("unexpected cached payload type %T", value)
	}
	return details, nil
}

func (s *StatsService) loadPlayerDetails(ctx context.Context, username string) (chess.PlayerDetails, error) {
	summary, err := s.PlayerSummary(ctx, username)
	if err != nil {
		return chess.PlayerDetails{}, err
	}

	details := chess.PlayerDetails{
		Summary: summary,
		Graph:   []chess.GameRecord{},
		Recent:  []chess.GameRecord{},
	}

	archives, err := s.provider.FetchArchiveIndex(ctx, username)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch archive index failed, serving summary without games", "username", username, "error", err)
		return details, nil
	}
	if len(archives) == 0 {
		return details, nil
	}

	// Only the most recent month. Older archives would multiply the
	// per-game fan-out without changing the dashboard.
	lastArchive := archives[len(archives)-1]
	games, err := s.provider.FetchArchiveGames(ctx, lastArchive)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch archive games failed, serving summary without games", "username", username, "archive", lastArchive, "error", err)
		return details, nil
	}

	reverseGames(games)
	if len(games) > recentGamesCap {
		games = games[:recentGamesCap]
	}

	records, err := s.enrichGames(ctx, username, games)
	if err != nil {
		return chess.PlayerDetails{}, err
	}

	// records is newest first here. Graph wants chronological order,
	// Recent wants newest first; same rows, opposite order.
	recent := make([]chess.GameRecord, len(records))
	copy(recent, records)
	reverseRecords(records)

	details.Graph = records
	details.Recent = recent
	return details, nil
}

func (s *StatsService) enrichGames(ctx context.Context, username string, games []ExternalGame) ([]chess.GameRecord, error) {
	records := make([]chess.GameRecord, len(games))
	if len(games) == 0 {
		return records, nil
	}

	workerCount := s.workerCount
	if workerCount > len(games) {
		workerCount = len(games)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, game := range games {
		idx, game := idx, game
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			records[idx] = s.buildGameRecord(ctx, username, game)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	workers.Wait()

	return records, nil
}

func (s *StatsService) buildGameRecord(ctx context.Context, username string, game ExternalGame) chess.GameRecord {
	isWhite := strings.EqualFold(game.White.Username, username)
	mine := game.Black
	if isWhite {
		mine = game.White
	}

	delta, err := s.provider.FetchGameRatingDelta(ctx, gameIDFromURL(game.URL), username)
	if err != nil {
		// One failed lookup must not taint the other games.
		s.logger.WarnContext(ctx, "fetch rating delta failed, defaulting to zero", "username", username, "game_url", game.URL, "error", err)
		delta = 0
	}

	return chess.GameRecord{
		EndTime:      game.EndTime,
		URL:          game.URL,
		TimeClass:    game.TimeClass,
		White:        game.White.Username,
		Black:        game.Black.Username,
		WhiteRating:  game.White.Rating,
		BlackRating:  game.Black.Rating,
		PlayerRating: mine.Rating,
		Outcome:      chess.ClassifyResult(mine.Result),
		RatingDelta:  delta,
	}
}

func buildSummary(profile chess.Profile, stats chess.Stats) chess.PlayerSummary {
	return chess.PlayerSummary{
		Username:   profile.Username,
		AvatarURL:  profile.AvatarURL,
		Country:    profile.Country,
		ProfileURL: profile.ProfileURL,
		LastOnline: profile.LastOnline,
		Rapid:      normalizeModeRating(stats.Rapid),
		Blitz:      normalizeModeRating(stats.Blitz),
		Bullet:     normalizeModeRating(stats.Bullet),
	}
}

func normalizeModeRating(mode chess.ModeRating) chess.ModeRating {
	if strings.TrimSpace(mode.Current) == "" {
		mode.Current = chess.RatingUnknown
	}
	if strings.TrimSpace(mode.Best) == "" {
		mode.Best = chess.RatingUnknown
	}
	return mode
}

func gameIDFromURL(gameURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(gameURL), "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}

func reverseGames(items []ExternalGame) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func reverseRecords(items []chess.GameRecord) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
