package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

type profileDTO struct {
	UserID        string    `json:"userId"`
	ChessUsername string    `json:"chessUsername"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.profileService.Me(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get my profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileDTO{
		UserID:        item.UserID,
		ChessUsername: item.ChessUsername,
		AvatarURL:     item.AvatarURL,
		UpdatedAt:     item.UpdatedAt,
	})
}

func (h *Handler) LinkMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req linkProfileRequest
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

	item, err := h.profileService.LinkChessAccount(ctx, principal, req.ChessUsername)
	if err != nil {
		h.logger.WarnContext(ctx, "link chess account failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileDTO{
		UserID:        item.UserID,
		ChessUsername: item.ChessUsername,
		AvatarURL:     item.AvatarURL,
		UpdatedAt:     item.UpdatedAt,
	})
}
