package chesscom

import (
	"strconv"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

type profilePayload struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	Country    string `json:"country"`
	URL        string `json:"url"`
	LastOnline int64  `json:"last_online"`
}

type ratingSnapshot struct {
	Rating *int `json:"rating"`
}

type modeStatsPayload struct {
	Last ratingSnapshot `json:"last"`
	Best ratingSnapshot `json:"best"`
}

func (p modeStatsPayload) modeRating() chess.ModeRating {
	return chess.ModeRating{
		Current: ratingOrUnknown(p.Last.Rating),
		Best:    ratingOrUnknown(p.Best.Rating),
	}
}

func ratingOrUnknown(rating *int) string {
	if rating == nil {
		return chess.RatingUnknown
	}
	return strconv.Itoa(*rating)
}

type statsPayload struct {
	ChessRapid  modeStatsPayload `json:"chess_rapid"`
	ChessBlitz  modeStatsPayload `json:"chess_blitz"`
	ChessBullet modeStatsPayload `json:"chess_bullet"`
}

type archivesPayload struct {
	Archives []string `json:"archives"`
}

type archiveGameSidePayload struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

type archiveGamePayload struct {
	URL       string                 `json:"url"`
	EndTime   int64                  `json:"end_time"`
	TimeClass string                 `json:"time_class"`
	White     archiveGameSidePayload `json:"white"`
	Black     archiveGameSidePayload `json:"black"`
}

type archiveGamesPayload struct {
	Games []archiveGamePayload `json:"games"`
}

type gameDetailSidePayload struct {
	Username         string `json:"username"`
	RatingAdjustment int    `json:"rating_adjustment"`
}

type gameDetailPayload struct {
	White gameDetailSidePayload `json:"white"`
	Black gameDetailSidePayload `json:"black"`
}

type callbackGamePayload struct {
	Game struct {
		PGN   string `json:"pgn"`
		White struct {
			Username string `json:"username"`
		} `json:"white"`
		Black struct {
			Username string `json:"username"`
		} `json:"black"`
	} `json:"game"`
}

type onlineStatusPayload struct {
	Status string `json:"status"`
}
