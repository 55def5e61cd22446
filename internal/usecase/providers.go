package usecase

import (
	"context"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

// ChessProvider is the outbound port to the public chess API. All
// methods are best-effort: callers soften failures into benign defaults
// instead of propagating them to the user.
type ChessProvider interface {
	FetchProfile(ctx context.Context, username string) (chess.Profile, bool, error)
	FetchStats(ctx context.Context, username string) (chess.Stats, error)
	FetchArchiveIndex(ctx context.Context, username string) ([]string, error)
	FetchArchiveGames(ctx context.Context, archiveURL string) ([]ExternalGame, error)
	FetchGameRatingDelta(ctx context.Context, gameID, username string) (int, error)
	FetchMonthlyPGN(ctx context.Context, username, year, month string) (string, bool, error)
	FetchCallbackGame(ctx context.Context, gameID string) (chess.GamePGN, bool, error)
	FetchIsOnline(ctx context.Context, username string) (bool, error)
}

// ExternalGame is one raw game entry from a monthly archive.
type ExternalGame struct {
	URL       string
	EndTime   int64
	TimeClass string
	White     ExternalGameSide
	Black     ExternalGameSide
}

type ExternalGameSide struct {
	Username string
	Rating   int
	Result   string
}

// LichessImporter submits a PGN to the analysis import endpoint and
// returns the resulting pairing URL.
type LichessImporter interface {
	Import(ctx context.Context, pgn string) (string, error)
}

// LiveGameWatcher detects whether a player is currently in a live game.
// Implementations are best-effort and must report idle on any failure.
type LiveGameWatcher interface {
	Watch(ctx context.Context, username string) (chess.LiveGame, error)
}
