package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
}
