package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

// ArchiveScanner extracts one game record from a monthly archive text.
type ArchiveScanner func(archive, gameID string) (chess.GamePGN, bool)

type GameService struct {
	provider ChessProvider
	scanner  ArchiveScanner
	importer LichessImporter
	logger   *logging.Logger
}

func NewGameService(provider ChessProvider, scanner ArchiveScanner, importer LichessImporter, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		provider: provider,
		scanner:  scanner,
		importer: importer,
		logger:   logger,
	}
}

// Lookup finds the PGN for one game. With username, year and month the
// monthly archive is scanned first; the single-game callback endpoint
// is the fallback when the context is missing or the scan misses.
func (s *GameService) Lookup(ctx context.Context, gameID, username, year, month string) (chess.GamePGN, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Lookup")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return chess.GamePGN{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	username = strings.TrimSpace(username)
	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)

	if username != "" && year != "" && month != "" {
		archive, found, err := s.provider.FetchMonthlyPGN(ctx, username, year, month)
		if err != nil {
			s.logger.WarnContext(ctx, "monthly archive fetch failed, trying callback endpoint", "game_id", gameID, "username", username, "error", err)
		} else if found {
			if game, ok := s.scanner(archive, gameID); ok {
				return game, nil
			}
		}
	}

	game, found, err := s.provider.FetchCallbackGame(ctx, gameID)
	if err != nil {
		s.logger.WarnContext(ctx, "callback game fetch failed", "game_id", gameID, "error", err)
	}
	if err == nil && found {
		return game, nil
	}

	return chess.GamePGN{}, fmt.Errorf("%w: game %q", ErrNotFound, gameID)
}

// Import looks up a game and submits its PGN for analysis, returning
// the analysis URL.
func (s *GameService) Import(ctx context.Context, gameID, username, year, month string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Import")
	defer span.End()

	if s.importer == nil {
		return "", fmt.Errorf("%w: pgn import is not configured", ErrDependencyUnavailable)
	}

	game, err := s.Lookup(ctx, gameID, username, year, month)
	if err != nil {
		return "", err
	}

	analysisURL, err := s.importer.Import(ctx, game.PGN)
	if err != nil {
		return "", fmt.Errorf("%w: import pgn: %v", ErrDependencyUnavailable, err)
	}
	return analysisURL, nil
}
