package httpapi

import (
	"net/http"
	"strings"
)

type sharedBoardDTO struct {
	Board   boardDTO         `json:"board"`
	Members []boardMemberDTO `json:"members"`
}

// GetSharedBoard serves the unauthenticated share link. Private boards
// come back 403 regardless of who asks.
func (h *Handler) GetSharedBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSharedBoard")
	defer span.End()

	boardID := strings.TrimSpace(r.PathValue("boardID"))
	item, members, err := h.boardService.SharedBoard(ctx, boardID)
	if err != nil {
		h.logger.WarnContext(ctx, "shared board view failed", "board_id", boardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sharedBoardDTO{
		Board:   boardToDTO(ctx, item),
		Members: boardMembersToDTO(members),
	})
}
