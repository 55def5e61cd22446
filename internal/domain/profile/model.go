package profile

import (
	"fmt"
	"time"
)

// Profile links an authenticated user to the chess account they track.
// The row id is the auth user id.
type Profile struct {
	UserID        string
	ChessUsername string
	AvatarURL     string
	UpdatedAt     time.Time
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	if p.ChessUsername == "" {
		return fmt.Errorf("profile chess username is required")
	}

	return nil
}
