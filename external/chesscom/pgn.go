package chesscom

import (
	"regexp"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

// recordMarker starts every game record in a monthly archive. Splitting
// on it consumes the marker, so a matched fragment gets it re-prepended.
const recordMarker = `[Event "`

const (
	fallbackWhiteName = "White"
	fallbackBlackName = "Black"
)

var (
	whiteHeaderRegex = regexp.MustCompile(`\[White "(.*?)"\]`)
	blackHeaderRegex = regexp.MustCompile(`\[Black "(.*?)"\]`)
)

// ExtractGameFromArchive finds the game with the given identifier inside
// a monthly archive text. Each record carries a Link header ending in
// /<id>, so a fragment containing that suffix is the record we want.
// The first matching fragment in document order wins; identifiers are
// not checked for uniqueness within the month.
func ExtractGameFromArchive(archive, gameID string) (chess.GamePGN, bool) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" || strings.TrimSpace(archive) == "" {
		return chess.GamePGN{}, false
	}

	needle := "/" + gameID
	for _, fragment := range strings.Split(archive, recordMarker) {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		if !strings.Contains(fragment, needle) {
			continue
		}

		pgn := recordMarker + fragment
		return chess.GamePGN{
			PGN:   pgn,
			White: headerValue(whiteHeaderRegex, pgn, fallbackWhiteName),
			Black: headerValue(blackHeaderRegex, pgn, fallbackBlackName),
		}, true
	}

	return chess.GamePGN{}, false
}

func headerValue(pattern *regexp.Regexp, pgn, fallback string) string {
	match := pattern.FindStringSubmatch(pgn)
	if len(match) < 2 || strings.TrimSpace(match[1]) == "" {
		return fallback
	}
	return match[1]
}
