package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

type modeRatingDTO struct {
	Current string `json:"current"`
	Best    string `json:"best"`
}

type playerSummaryDTO struct {
	Username   string        `json:"username"`
	AvatarURL  string        `json:"avatarUrl"`
	Country    string        `json:"country,omitempty"`
	ProfileURL string        `json:"profileUrl,omitempty"`
	LastOnline int64         `json:"lastOnline,omitempty"`
	Rapid      modeRatingDTO `json:"rapid"`
	Blitz      modeRatingDTO `json:"blitz"`
	Bullet     modeRatingDTO `json:"bullet"`
}

type gameRecordDTO struct {
	EndTime      int64  `json:"endTime"`
	URL          string `json:"url"`
	TimeClass    string `json:"timeClass"`
	White        string `json:"white"`
	Black        string `json:"black"`
	WhiteRating  int    `json:"whiteRating"`
	BlackRating  int    `json:"blackRating"`
	PlayerRating int    `json:"playerRating"`
	Outcome      string `json:"outcome"`
	RatingDelta  int    `json:"ratingDelta"`
}

type playerDetailsDTO struct {
	Summary playerSummaryDTO `json:"summary"`
	Graph   []gameRecordDTO  `json:"graph"`
	Recent  []gameRecordDTO  `json:"recent"`
}

func playerSummaryToDTO(ctx context.Context, summary chess.PlayerSummary) playerSummaryDTO {
	_, span := startSpan(ctx, "httpapi.playerSummaryToDTO")
	defer span.End()

	return playerSummaryDTO{
		Username:   summary.Username,
		AvatarURL:  summary.AvatarURL,
		Country:    summary.Country,
		ProfileURL: summary.ProfileURL,
		LastOnline: summary.LastOnline,
		Rapid:      modeRatingDTO(summary.Rapid),
		Blitz:      modeRatingDTO(summary.Blitz),
		Bullet:     modeRatingDTO(summary.Bullet),
	}
}

func gameRecordsToDTO(records []chess.GameRecord) []gameRecordDTO {
	items := make([]gameRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, gameRecordDTO{
			EndTime:      record.EndTime,
			URL:          record.URL,
			TimeClass:    record.TimeClass,
			White:        record.White,
			Black:        record.Black,
			WhiteRating:  record.WhiteRating,
			BlackRating:  record.BlackRating,
			PlayerRating: record.PlayerRating,
			Outcome:      string(record.Outcome),
			RatingDelta:  record.RatingDelta,
		})
	}
	return items
}

func (h *Handler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSummary")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	summary, err := h.statsService.PlayerSummary(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get player summary failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSummaryToDTO(ctx, summary))
}

func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDetails")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	details, err := h.statsService.PlayerDetails(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get player details failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailsDTO{
		Summary: playerSummaryToDTO(ctx, details.Summary),
		Graph:   gameRecordsToDTO(details.Graph),
		Recent:  gameRecordsToDTO(details.Recent),
	})
}

type presenceDTO struct {
	Status   string `json:"status"`
	LastSeen int64  `json:"lastSeen,omitempty"`
	Source   string `json:"source,omitempty"`
}

func (h *Handler) GetPlayerPresence(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerPresence")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	presence := h.presenceService.Check(ctx, username)

	status := "offline"
	if presence.Online {
		status = "online"
	}
	writeJSON(ctx, w, http.StatusOK, presenceDTO{
		Status:   status,
		LastSeen: presence.LastSeen,
		Source:   presence.Source,
	})
}

type liveGameDTO struct {
	Status string `json:"status"`
	GameID string `json:"gameId,omitempty"`
	URL    string `json:"url,omitempty"`
}

func (h *Handler) GetPlayerLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerLiveGame")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	game := h.liveGameService.Status(ctx, username)

	if !game.Playing {
		writeJSON(ctx, w, http.StatusOK, liveGameDTO{Status: "idle"})
		return
	}
	writeJSON(ctx, w, http.StatusOK, liveGameDTO{
		Status: "playing",
		GameID: game.GameID,
		URL:    game.URL,
	})
}
