package chess

// RatingUnknown is the placeholder used when a player has no recorded
// rating for a time control.
const RatingUnknown = "N/A"

// DefaultAvatarURL is used when the upstream profile carries no avatar.
const DefaultAvatarURL = "https://www.chess.com/bundles/web/images/user-image.svg"

// Profile is the raw upstream profile for one player.
type Profile struct {
	Username   string
	AvatarURL  string
	Country    string
	ProfileURL string
	LastOnline int64
}

// Stats holds the per-mode ratings for one player with the no-rating
// sentinel already applied.
type Stats struct {
	Rapid  ModeRating
	Blitz  ModeRating
	Bullet ModeRating
}

// ModeRating holds the current and best rating for one time control.
// Values are rendered as strings so the no-rating sentinel survives
// serialization unchanged.
type ModeRating struct {
	Current string
	Best    string
}

// PlayerSummary is the normalized profile card for one player. It is
// derived fresh on every query and never persisted.
type PlayerSummary struct {
	Username   string
	AvatarURL  string
	Country    string
	ProfileURL string
	LastOnline int64
	Rapid      ModeRating
	Blitz      ModeRating
	Bullet     ModeRating
}

// Outcome is the tracked player's result in one game.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// ClassifyResult maps an upstream per-player result code onto an
// Outcome. Everything that is not a known loss code or an outright win
// counts as a draw, which matches how the upstream encodes stalemates,
// repetitions and agreed draws.
func ClassifyResult(code string) Outcome {
	switch code {
	case "win":
		return OutcomeWin
	case "checkmated", "resign", "timeout", "abandoned":
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// GameRecord is one finished game seen from the tracked player's side.
type GameRecord struct {
	EndTime      int64
	URL          string
	TimeClass    string
	White        string
	Black        string
	WhiteRating  int
	BlackRating  int
	PlayerRating int
	Outcome      Outcome
	RatingDelta  int
}

// PlayerDetails bundles the summary with two views over the same recent
// games: Graph is chronological for plotting, Recent is newest first for
// listing. The duplication is intentional.
type PlayerDetails struct {
	Summary PlayerSummary
	Graph   []GameRecord
	Recent  []GameRecord
}

// PresenceStatus is the result of an online check. Source is set when
// the determination came from the explicit status endpoint rather than
// the last-online recency window.
type PresenceStatus struct {
	Online   bool
	LastSeen int64
	Source   string
}

// LiveGame describes a game currently being played, as detected from the
// player's public member page.
type LiveGame struct {
	Playing bool
	GameID  string
	URL     string
}

// GamePGN is a single game record extracted from a monthly archive or
// the fallback single-game endpoint.
type GamePGN struct {
	PGN   string
	White string
	Black string
}
