package postgres

import (
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
)

type boardTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	OwnerID   string     `db:"owner_user_id"`
	IsPublic  bool       `db:"is_public"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type boardInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	OwnerID  string `db:"owner_user_id"`
	IsPublic bool   `db:"is_public"`
}

func boardFromRow(row boardTableModel) board.Board {
	return board.Board{
		ID:        row.PublicID,
		Name:      row.Name,
		OwnerID:   row.OwnerID,
		IsPublic:  row.IsPublic,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type boardMemberTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	BoardID        string     `db:"board_public_id"`
	Username       string     `db:"username"`
	AvatarURL      string     `db:"avatar_url"`
	PrimaryScore   int        `db:"primary_score"`
	SecondaryScore int        `db:"secondary_score"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type boardMemberInsertModel struct {
	PublicID       string `db:"public_id"`
	BoardID        string `db:"board_public_id"`
	Username       string `db:"username"`
	AvatarURL      string `db:"avatar_url"`
	PrimaryScore   int    `db:"primary_score"`
	SecondaryScore int    `db:"secondary_score"`
}

func boardMemberFromRow(row boardMemberTableModel) board.Member {
	return board.Member{
		ID:        row.PublicID,
		BoardID:   row.BoardID,
		Username:  row.Username,
		AvatarURL: row.AvatarURL,
		Primary:   row.PrimaryScore,
		Secondary: row.SecondaryScore,
		CreatedAt: row.CreatedAt,
	}
}

type boardMessageTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	BoardID   string    `db:"board_public_id"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type boardMessageInsertModel struct {
	PublicID string `db:"public_id"`
	BoardID  string `db:"board_public_id"`
	UserID   string `db:"user_id"`
	Username string `db:"username"`
	Content  string `db:"content"`
}

func boardMessageFromRow(row boardMessageTableModel) board.Message {
	return board.Message{
		ID:        row.PublicID,
		BoardID:   row.BoardID,
		UserID:    row.UserID,
		Username:  row.Username,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
}
