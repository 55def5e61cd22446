package postgres

import (
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/profile"
)

type profileTableModel struct {
	ID            int64     `db:"id"`
	UserID        string    `db:"user_id"`
	ChessUsername string    `db:"chess_username"`
	AvatarURL     string    `db:"avatar_url"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type profileInsertModel struct {
	UserID        string `db:"user_id"`
	ChessUsername string `db:"chess_username"`
	AvatarURL     string `db:"avatar_url"`
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		UserID:        row.UserID,
		ChessUsername: row.ChessUsername,
		AvatarURL:     row.AvatarURL,
		UpdatedAt:     row.UpdatedAt,
	}
}
