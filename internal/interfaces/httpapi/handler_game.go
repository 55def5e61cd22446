package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/usecase"
)

type gameSideDTO struct {
	Username string `json:"username"`
}

type gameDTO struct {
	PGN   string      `json:"pgn"`
	White gameSideDTO `json:"white"`
	Black gameSideDTO `json:"black"`
}

type gameEnvelopeDTO struct {
	Game gameDTO `json:"game"`
}

// GetGame resolves one game's PGN. With username, year and month query
// parameters the monthly archive is scanned first; otherwise lookup
// goes straight to the single-game fallback.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	query := r.URL.Query()
	username := strings.TrimSpace(query.Get("username"))
	year := strings.TrimSpace(query.Get("year"))
	month := strings.TrimSpace(query.Get("month"))

	game, err := h.gameService.Lookup(ctx, gameID, username, year, month)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			writeProxyError(ctx, w, http.StatusNotFound, "Game not found")
			return
		}
		h.logger.WarnContext(ctx, "game lookup failed", "game_id", gameID, "error", err)
		writeProxyError(ctx, w, mapError(ctx, err).HTTPStatus, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, gameEnvelopeDTO{
		Game: gameDTO{
			PGN:   game.PGN,
			White: gameSideDTO{Username: game.White},
			Black: gameSideDTO{Username: game.Black},
		},
	})
}

type importResultDTO struct {
	URL string `json:"url"`
}

func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	query := r.URL.Query()
	username := strings.TrimSpace(query.Get("username"))
	year := strings.TrimSpace(query.Get("year"))
	month := strings.TrimSpace(query.Get("month"))

	importURL, err := h.gameService.Import(ctx, gameID, username, year, month)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			writeProxyError(ctx, w, http.StatusNotFound, "Game not found")
			return
		}
		h.logger.WarnContext(ctx, "game import failed", "game_id", gameID, "error", err)
		writeProxyError(ctx, w, mapError(ctx, err).HTTPStatus, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, importResultDTO{URL: importURL})
}
