package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/user"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/id"
)

// chatWallLimit caps how many messages one board view returns.
const chatWallLimit = 50

type BoardService struct {
	boardRepo   board.Repository
	memberRepo  board.MemberRepository
	messageRepo board.MessageRepository
	idGen       id.Generator
	now         func() time.Time
}

func NewBoardService(
	boardRepo board.Repository,
	memberRepo board.MemberRepository,
	messageRepo board.MessageRepository,
	idGen id.Generator,
) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		memberRepo:  memberRepo,
		messageRepo: messageRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *BoardService) CreateBoard(ctx context.Context, principal user.Principal, name string, isPublic bool) (board.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.CreateBoard")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return board.Board{}, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}
	if principal.UserID == "" {
		return board.Board{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}

	boardID, err := s.idGen.NewID()
	if err != nil {
		return board.Board{}, fmt.Errorf("generate board id: %w", err)
	}

	now := s.now().UTC()
	item := board.Board{
		ID:        boardID,
		Name:      name,
		OwnerID:   principal.UserID,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.boardRepo.Create(ctx, item); err != nil {
		return board.Board{}, fmt.Errorf("create board: %w", err)
	}

	return item, nil
}

func (s *BoardService) ListBoards(ctx context.Context, principal user.Principal) ([]board.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListBoards")
	defer span.End()

	if principal.UserID == "" {
		return nil, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}

	items, err := s.boardRepo.ListByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list boards owner_id=%s: %w", principal.UserID, err)
	}
	return items, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, principal user.Principal, boardID, name string, isPublic bool) (board.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.UpdateBoard")
	defer span.End()

	item, err := s.ownedBoard(ctx, principal, boardID)
	if err != nil {
		return board.Board{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return board.Board{}, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}

	item.Name = name
	item.IsPublic = isPublic
	item.UpdatedAt = s.now().UTC()
	if err := s.boardRepo.Update(ctx, item); err != nil {
		return board.Board{}, fmt.Errorf("update board id=%s: %w", boardID, err)
	}
	return item, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, principal user.Principal, boardID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.DeleteBoard")
	defer span.End()

	if _, err := s.ownedBoard(ctx, principal, boardID); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return fmt.Errorf("delete board id=%s: %w", boardID, err)
	}
	return nil
}

// SharedBoard serves the read-only share view. Private boards are
// denied outright, there is no caller identity on this path.
func (s *BoardService) SharedBoard(ctx context.Context, boardID string) (board.Board, []board.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.SharedBoard")
	defer span.End()

	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		return board.Board{}, nil, fmt.Errorf("%w: board id is required", ErrInvalidInput)
	}

	item, found, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return board.Board{}, nil, fmt.Errorf("get board id=%s: %w", boardID, err)
	}
	if !found {
		return board.Board{}, nil, fmt.Errorf("%w: board %q", ErrNotFound, boardID)
	}
	if !item.IsPublic {
		return board.Board{}, nil, fmt.Errorf("%w: board %q is private", ErrForbidden, boardID)
	}

	members, err := s.memberRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return board.Board{}, nil, fmt.Errorf("list members board_id=%s: %w", boardID, err)
	}
	return item, members, nil
}

// MemberInput carries the fields callers provide for a new member. The
// two score values are generic: ratings for chess, trophies and win
// rate for other games.
type MemberInput struct {
	Username  string
	AvatarURL string
	Primary   int
	Secondary int
}

func (s *BoardService) AddMember(ctx context.Context, principal user.Principal, boardID string, input MemberInput) (board.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.AddMember")
	defer span.End()

	if _, err := s.ownedBoard(ctx, principal, boardID); err != nil {
		return board.Member{}, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return board.Member{}, fmt.Errorf("%w: member username is required", ErrInvalidInput)
	}

	// Identity within a board is the display name. The table carries no
	// unique constraint, the check lives here.
	existing, err := s.memberRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return board.Member{}, fmt.Errorf("list members board_id=%s: %w", boardID, err)
	}
	for _, member := range existing {
		if strings.EqualFold(member.Username, username) {
			return board.Member{}, fmt.Errorf("%w: %q is already on this board", ErrInvalidInput, username)
		}
	}

	memberID, err := s.idGen.NewID()
	if err != nil {
		return board.Member{}, fmt.Errorf("generate member id: %w", err)
	}

	item := board.Member{
		ID:        memberID,
		BoardID:   boardID,
		Username:  username,
		AvatarURL: strings.TrimSpace(input.AvatarURL),
		Primary:   input.Primary,
		Secondary: input.Secondary,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return board.Member{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.memberRepo.Add(ctx, item); err != nil {
		return board.Member{}, fmt.Errorf("add member board_id=%s: %w", boardID, err)
	}
	return item, nil
}

func (s *BoardService) ListMembers(ctx context.Context, principal user.Principal, boardID string) ([]board.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListMembers")
	defer span.End()

	if _, err := s.readableBoard(ctx, principal, boardID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members board_id=%s: %w", boardID, err)
	}
	return members, nil
}

func (s *BoardService) RemoveMember(ctx context.Context, principal user.Principal, boardID, memberID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.RemoveMember")
	defer span.End()

	if _, err := s.ownedBoard(ctx, principal, boardID); err != nil {
		return err
	}

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	if err := s.memberRepo.Remove(ctx, boardID, memberID); err != nil {
		return fmt.Errorf("remove member board_id=%s member_id=%s: %w", boardID, memberID, err)
	}
	return nil
}

func (s *BoardService) PostMessage(ctx context.Context, principal user.Principal, boardID, username, content string) (board.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.PostMessage")
	defer span.End()

	if _, err := s.readableBoard(ctx, principal, boardID); err != nil {
		return board.Message{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return board.Message{}, fmt.Errorf("%w: message content is required", ErrInvalidInput)
	}

	messageID, err := s.idGen.NewID()
	if err != nil {
		return board.Message{}, fmt.Errorf("generate message id: %w", err)
	}

	item := board.Message{
		ID:        messageID,
		BoardID:   boardID,
		UserID:    principal.UserID,
		Username:  strings.TrimSpace(username),
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return board.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.messageRepo.Append(ctx, item); err != nil {
		return board.Message{}, fmt.Errorf("append message board_id=%s: %w", boardID, err)
	}
	return item, nil
}

func (s *BoardService) ListMessages(ctx context.Context, principal user.Principal, boardID string) ([]board.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.ListMessages")
	defer span.End()

	if _, err := s.readableBoard(ctx, principal, boardID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListRecent(ctx, boardID, chatWallLimit)
	if err != nil {
		return nil, fmt.Errorf("list messages board_id=%s: %w", boardID, err)
	}
	return messages, nil
}

// ownedBoard loads a board and requires the caller to be its owner.
func (s *BoardService) ownedBoard(ctx context.Context, principal user.Principal, boardID string) (board.Board, error) {
	item, err := s.loadBoard(ctx, principal, boardID)
	if err != nil {
		return board.Board{}, err
	}
	if item.OwnerID != principal.UserID {
		return board.Board{}, fmt.Errorf("%w: board %q belongs to another user", ErrForbidden, boardID)
	}
	return item, nil
}

// readableBoard loads a board and requires the caller to be its owner
// or the board to be public.
func (s *BoardService) readableBoard(ctx context.Context, principal user.Principal, boardID string) (board.Board, error) {
	item, err := s.loadBoard(ctx, principal, boardID)
	if err != nil {
		return board.Board{}, err
	}
	if !item.IsPublic && item.OwnerID != principal.UserID {
		return board.Board{}, fmt.Errorf("%w: board %q is private", ErrForbidden, boardID)
	}
	return item, nil
}

func (s *BoardService) loadBoard(ctx context.Context, principal user.Principal, boardID string) (board.Board, error) {
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		return board.Board{}, fmt.Errorf("%w: board id is required", ErrInvalidInput)
	}
	if principal.UserID == "" {
		return board.Board{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}

	item, found, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return board.Board{}, fmt.Errorf("get board id=%s: %w", boardID, err)
	}
	if !found {
		return board.Board{}, fmt.Errorf("%w: board %q", ErrNotFound, boardID)
	}
	return item, nil
}
