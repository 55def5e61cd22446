package usecase

import (
	"context"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

type LiveGameService struct {
	watcher LiveGameWatcher
	logger  *logging.Logger
}

func NewLiveGameService(watcher LiveGameWatcher, logger *logging.Logger) *LiveGameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveGameService{
		watcher: watcher,
		logger:  logger,
	}
}

// Status reports whether the player is in a live game right now. The
// detection scrapes third-party markup, so every failure reads as idle.
func (s *LiveGameService) Status(ctx context.Context, username string) chess.LiveGame {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Status")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || s.watcher == nil {
		return chess.LiveGame{}
	}

	game, err := s.watcher.Watch(ctx, username)
	if err != nil {
		s.logger.WarnContext(ctx, "live game detection failed, reporting idle", "username", username, "error", err)
		return chess.LiveGame{}
	}
	return game
}
