package memory

import (
	"context"
	"sync"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]profile.Profile)}
}

func (r *ProfileRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.UserID] = p

	return nil
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}

	return p, true, nil
}
