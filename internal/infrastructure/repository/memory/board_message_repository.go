package memory

import (
	"context"
	"sync"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
)

type BoardMessageRepository struct {
	mu    sync.RWMutex
	items map[string][]board.Message
}

func NewBoardMessageRepository() *BoardMessageRepository {
	return &BoardMessageRepository{items: make(map[string][]board.Message)}
}

func (r *BoardMessageRepository) Append(_ context.Context, m board.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[m.BoardID] = append(r.items[m.BoardID], m)

	return nil
}

func (r *BoardMessageRepository) ListRecent(_ context.Context, boardID string, limit int) ([]board.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := r.items[boardID]
	start := 0
	if limit > 0 && len(messages) > limit {
		start = len(messages) - limit
	}

	return append([]board.Message(nil), messages[start:]...), nil
}
