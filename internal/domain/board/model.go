package board

import (
	"fmt"
	"time"
)

// Board is a user-curated leaderboard. Only the owner may mutate it;
// IsPublic controls whether non-owners can read its members and
// messages.
type Board struct {
	ID        string
	Name      string
	OwnerID   string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Board) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("board name is required")
	}
	if b.OwnerID == "" {
		return fmt.Errorf("board owner is required")
	}

	return nil
}

// Member is a tracked player on a board. Primary and Secondary are
// generic score columns repurposed per game: chess boards store the
// rapid and blitz ratings, Clash Royale boards store trophies and win
// rate.
type Member struct {
	ID        string
	BoardID   string
	Username  string
	AvatarURL string
	Primary   int
	Secondary int
	CreatedAt time.Time
}

func (m Member) Validate() error {
	if m.BoardID == "" {
		return fmt.Errorf("member board id is required")
	}
	if m.Username == "" {
		return fmt.Errorf("member username is required")
	}

	return nil
}

// Message is one entry on a board's chat wall. Append only.
type Message struct {
	ID        string
	BoardID   string
	UserID    string
	Username  string
	Content   string
	CreatedAt time.Time
}

func (m Message) Validate() error {
	if m.BoardID == "" {
		return fmt.Errorf("message board id is required")
	}
	if m.Content == "" {
		return fmt.Errorf("message content is required")
	}

	return nil
}
