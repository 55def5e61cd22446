package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

type boardDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type boardMemberDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Primary   int       `json:"primaryScore"`
	Secondary int       `json:"secondaryScore"`
	CreatedAt time.Time `json:"createdAt"`
}

type boardMessageDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func boardToDTO(ctx context.Context, b board.Board) boardDTO {
	_, span := startSpan(ctx, "httpapi.boardToDTO")
	defer span.End()

	return boardDTO{
		ID:        b.ID,
		Name:      b.Name,
		IsPublic:  b.IsPublic,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func boardMembersToDTO(members []board.Member) []boardMemberDTO {
	items := make([]boardMemberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, boardMemberDTO{
			ID:        m.ID,
			Username:  m.Username,
			AvatarURL: m.AvatarURL,
			Primary:   m.Primary,
			Secondary: m.Secondary,
			CreatedAt: m.CreatedAt,
		})
	}
	return items
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBoard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createBoardRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.boardService.CreateBoard(ctx, principal, req.Name, req.IsPublic)
	if err != nil {
		h.logger.WarnContext(ctx, "create board failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, boardToDTO(ctx, created))
}

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoards")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	boards, err := h.boardService.ListBoards(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list boards failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]boardDTO, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardToDTO(ctx, b))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBoard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	var req updateBoardRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.boardService.UpdateBoard(ctx, principal, boardID, req.Name, req.IsPublic)
	if err != nil {
		h.logger.WarnContext(ctx, "update board failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(ctx, updated))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBoard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	if err := h.boardService.DeleteBoard(ctx, principal, boardID); err != nil {
		h.logger.WarnContext(ctx, "delete board failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AddBoardMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddBoardMember")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	var req addMemberRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	member, err := h.boardService.AddMember(ctx, principal, boardID, usecase.MemberInput{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Primary:   req.Primary,
		Secondary: req.Secondary,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add board member failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, boardMembersToDTO([]board.Member{member})[0])
}

func (h *Handler) ListBoardMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoardMembers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	members, err := h.boardService.ListMembers(ctx, principal, boardID)
	if err != nil {
		h.logger.WarnContext(ctx, "list board members failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardMembersToDTO(members))
}

func (h *Handler) RemoveBoardMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveBoardMember")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))
	memberID := strings.TrimSpace(r.PathValue("memberID"))

	if err := h.boardService.RemoveMember(ctx, principal, boardID, memberID); err != nil {
		h.logger.WarnContext(ctx, "remove board member failed", "user_id", principal.UserID, "board_id", boardID, "member_id", memberID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) PostBoardMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostBoardMessage")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	var req postMessageRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	message, err := h.boardService.PostMessage(ctx, principal, boardID, req.Username, req.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "post board message failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, boardMessageDTO{
		ID:        message.ID,
		UserID:    message.UserID,
		Username:  message.Username,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	})
}

func (h *Handler) ListBoardMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoardMessages")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	boardID := strings.TrimSpace(r.PathValue("boardID"))

	messages, err := h.boardService.ListMessages(ctx, principal, boardID)
	if err != nil {
		h.logger.WarnContext(ctx, "list board messages failed", "user_id", principal.UserID, "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]boardMessageDTO, 0, len(messages))
	for _, message := range messages {
		items = append(items, boardMessageDTO{
			ID:        message.ID,
			UserID:    message.UserID,
			Username:  message.Username,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
