package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
)

// onlineWindow is how recently a player must have been seen for the
// recency check alone to call them online.
const onlineWindow = 300 * time.Second

const presenceSourceAPIStatus = "api_status"

type PresenceService struct {
	provider ChessProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewPresenceService(provider ChessProvider, logger *logging.Logger) *PresenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PresenceService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Check never fails: any upstream problem reads as offline. A player is
// online when they were seen within the recency window, or when the
// explicit status endpoint says so (a player mid-game can sit still for
// longer than the window).
func (s *PresenceService) Check(ctx context.Context, username string) chess.PresenceStatus {
	ctx, span := startUsecaseSpan(ctx, "usecase.PresenceService.Check")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return chess.PresenceStatus{}
	}

	profile, found, err := s.provider.FetchProfile(ctx, username)
	if err != nil || !found {
		if err != nil {
			s.logger.WarnContext(ctx, "presence profile lookup failed, reporting offline", "username", username, "error", err)
		}
		return chess.PresenceStatus{}
	}

	elapsed := s.now().Unix() - profile.LastOnline
	if elapsed < int64(onlineWindow.Seconds()) {
		return chess.PresenceStatus{Online: true, LastSeen: elapsed}
	}

	online, err := s.provider.FetchIsOnline(ctx, username)
	if err != nil {
		s.logger.WarnContext(ctx, "presence status lookup failed, reporting offline", "username", username, "error", err)
		return chess.PresenceStatus{}
	}
	if online {
		return chess.PresenceStatus{Online: true, Source: presenceSourceAPIStatus}
	}

	return chess.PresenceStatus{}
}
