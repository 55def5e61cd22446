package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
)

type BoardMemberRepository struct {
	mu    sync.RWMutex
	items map[string][]board.Member
}

func NewBoardMemberRepository() *BoardMemberRepository {
	return &BoardMemberRepository{items: make(map[string][]board.Member)}
}

func (r *BoardMemberRepository) Add(_ context.Context, m board.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[m.BoardID] = append(r.items[m.BoardID], m)

	return nil
}

func (r *BoardMemberRepository) ListByBoard(_ context.Context, boardID string) ([]board.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]board.Member(nil), r.items[boardID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Primary > out[j].Primary
	})

	return out, nil
}

func (r *BoardMemberRepository) Remove(_ context.Context, boardID, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.items[boardID]
	kept := members[:0]
	for _, m := range members {
		if m.ID != memberID {
			kept = append(kept, m)
		}
	}
	r.items[boardID] = kept

	return nil
}
