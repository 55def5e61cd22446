package cache

import (
	"context"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	basecache "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/cache"
)

// BoardRepository caches board lookups in front of the persistent
// store. The shared view hits GetByID on every render, mutations are
// rare, so reads come from memory and writes drop the keys.
type BoardRepository struct {
	next  board.Repository
	cache *basecache.Store
}

func NewBoardRepository(next board.Repository, cache *basecache.Store) *BoardRepository {
	return &BoardRepository{next: next, cache: cache}
}

func (r *BoardRepository) Create(ctx context.Context, b board.Board) error {
	if err := r.next.Create(ctx, b); err != nil {
		return err
	}
	r.cache.Delete(ctx, "board:owner:"+b.OwnerID)

	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, boardID string) (board.Board, bool, error) {
	key := "board:id:" + boardID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, boardID)
		if err != nil {
			return nil, err
		}
		return cachedBoardByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return board.Board{}, false, err
	}

	cached, _ := v.(cachedBoardByID)
	return cached.value, cached.exists, nil
}

func (r *BoardRepository) ListByOwner(ctx context.Context, ownerID string) ([]board.Board, error) {
	key := "board:owner:" + ownerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return append([]board.Board(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]board.Board)
	return append([]board.Board(nil), items...), nil
}

func (r *BoardRepository) Update(ctx context.Context, b board.Board) error {
	if err := r.next.Update(ctx, b); err != nil {
		return err
	}
	r.cache.Delete(ctx, "board:id:"+b.ID)
	r.cache.Delete(ctx, "board:owner:"+b.OwnerID)

	return nil
}

func (r *BoardRepository) Delete(ctx context.Context, boardID string) error {
	if err := r.next.Delete(ctx, boardID); err != nil {
		return err
	}
	r.cache.Delete(ctx, "board:id:"+boardID)
	r.cache.DeletePrefix(ctx, "board:owner:")

	return nil
}

type cachedBoardByID struct {
	value  board.Board
	exists bool
}

// MemberRepository caches the member list the shared view renders.
type MemberRepository struct {
	next  board.MemberRepository
	cache *basecache.Store
}

func NewMemberRepository(next board.MemberRepository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) Add(ctx context.Context, m board.Member) error {
	if err := r.next.Add(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, "member:list:"+m.BoardID)

	return nil
}

func (r *MemberRepository) ListByBoard(ctx context.Context, boardID string) ([]board.Member, error) {
	key := "member:list:" + boardID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByBoard(ctx, boardID)
		if err != nil {
			return nil, err
		}
		return append([]board.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]board.Member)
	return append([]board.Member(nil), items...), nil
}

func (r *MemberRepository) Remove(ctx context.Context, boardID, memberID string) error {
	if err := r.next.Remove(ctx, boardID, memberID); err != nil {
		return err
	}
	r.cache.Delete(ctx, "member:list:"+boardID)

	return nil
}
