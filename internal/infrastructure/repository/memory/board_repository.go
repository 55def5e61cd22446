package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
)

type BoardRepository struct {
	mu    sync.RWMutex
	items map[string]board.Board
}

func NewBoardRepository() *BoardRepository {
	return &BoardRepository{items: make(map[string]board.Board)}
}

func (r *BoardRepository) Create(_ context.Context, b board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[b.ID] = b

	return nil
}

func (r *BoardRepository) GetByID(_ context.Context, boardID string) (board.Board, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[boardID]
	if !ok {
		return board.Board{}, false, nil
	}

	return b, true, nil
}

func (r *BoardRepository) ListByOwner(_ context.Context, ownerID string) ([]board.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]board.Board, 0)
	for _, b := range r.items {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *BoardRepository) Update(_ context.Context, b board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[b.ID] = b

	return nil
}

func (r *BoardRepository) Delete(_ context.Context, boardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, boardID)

	return nil
}
