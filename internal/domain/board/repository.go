package board

import "context"

// Repository describes board persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, b Board) error
	GetByID(ctx context.Context, boardID string) (Board, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Board, error)
	Update(ctx context.Context, b Board) error
	Delete(ctx context.Context, boardID string) error
}

// MemberRepository stores the players tracked on a board, ordered by the
// primary score descending on reads.
type MemberRepository interface {
	Add(ctx context.Context, m Member) error
	ListByBoard(ctx context.Context, boardID string) ([]Member, error)
	Remove(ctx context.Context, boardID, memberID string) error
}

// MessageRepository stores a board's chat wall. ListRecent returns at
// most limit messages, the newest ones, in ascending creation order.
type MessageRepository interface {
	Append(ctx context.Context, m Message) error
	ListRecent(ctx context.Context, boardID string, limit int) ([]Message, error)
}
