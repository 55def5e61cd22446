package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/profile"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/user"
)

type ProfileService struct {
	profileRepo profile.Repository
	provider    ChessProvider
	now         func() time.Time
}

func NewProfileService(profileRepo profile.Repository, provider ChessProvider) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		provider:    provider,
		now:         time.Now,
	}
}

// LinkChessAccount verifies the username upstream before storing the
// link, so a typo never becomes a tracked account.
func (s *ProfileService) LinkChessAccount(ctx context.Context, principal user.Principal, chessUsername string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.LinkChessAccount")
	defer span.End()

	if principal.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	chessUsername = strings.TrimSpace(chessUsername)
	if chessUsername == "" {
		return profile.Profile{}, fmt.Errorf("%w: chess username is required", ErrInvalidInput)
	}

	upstream, found, err := s.provider.FetchProfile(ctx, chessUsername)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("verify chess username: %w", err)
	}
	if !found {
		return profile.Profile{}, fmt.Errorf("%w: player %q", ErrNotFound, chessUsername)
	}

	item := profile.Profile{
		UserID:        principal.UserID,
		ChessUsername: upstream.Username,
		AvatarURL:     upstream.AvatarURL,
		UpdatedAt:     s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.profileRepo.Upsert(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile user_id=%s: %w", principal.UserID, err)
	}
	return item, nil
}

func (s *ProfileService) Me(ctx context.Context, principal user.Principal) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Me")
	defer span.End()

	if principal.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}

	item, found, err := s.profileRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile user_id=%s: %w", principal.UserID, err)
	}
	if !found {
		return profile.Profile{}, fmt.Errorf("%w: no linked chess account", ErrNotFound)
	}
	return item, nil
}
