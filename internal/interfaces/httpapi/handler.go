package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ewenguilhot8-netizen/chess-tracker/external/clashroyale"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/logging"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

// ClashRoyaleProxy relays player lookups to the Clash Royale API.
type ClashRoyaleProxy interface {
	FetchPlayer(ctx context.Context, tag string) (clashroyale.PlayerResult, error)
}

type Handler struct {
	statsService    *usecase.StatsService
	presenceService *usecase.PresenceService
	gameService     *usecase.GameService
	versusService   *usecase.VersusService
	liveGameService *usecase.LiveGameService
	boardService    *usecase.BoardService
	profileService  *usecase.ProfileService
	clashRoyale     ClashRoyaleProxy
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	statsService *usecase.StatsService,
	presenceService *usecase.PresenceService,
	gameService *usecase.GameService,
	versusService *usecase.VersusService,
	liveGameService *usecase.LiveGameService,
	boardService *usecase.BoardService,
	profileService *usecase.ProfileService,
	clashRoyale ClashRoyaleProxy,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		statsService:    statsService,
		presenceService: presenceService,
		gameService:     gameService,
		versusService:   versusService,
		liveGameService: liveGameService,
		boardService:    boardService,
		profileService:  profileService,
		clashRoyale:     clashRoyale,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createBoardRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsPublic bool   `json:"is_public"`
}

type updateBoardRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsPublic bool   `json:"is_public"`
}

type addMemberRequest struct {
	Username  string `json:"username" validate:"required,max=60"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=500"`
	Primary   int    `json:"primary_score"`
	Secondary int    `json:"secondary_score"`
}

type postMessageRequest struct {
	Username string `json:"username" validate:"omitempty,max=60"`
	Content  string `json:"content" validate:"required,max=500"`
}

type linkProfileRequest struct {
	ChessUsername string `json:"chess_username" validate:"required,max=60"`
}
