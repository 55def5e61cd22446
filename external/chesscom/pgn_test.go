package chesscom

import (
	"strings"
	"testing"
)

const sampleArchive = `[Event "Live Chess"]
[Site "Chess.com"]
[White "alice"]
[Black "bob"]
[Link "https://www.chess.com/game/live/111222333"]

1. e4 e5 2. Nf3 Nc6 1-0

[Event "Live Chess"]
[Site "Chess.com"]
[White "carol"]
[Black "alice"]
[Link "https://www.chess.com/game/live/444555666"]

1. d4 d5 2. c4 c6 0-1
`

func TestExtractGameFromArchive_FindsMatchingRecord(t *testing.T) {
	t.Parallel()

	game, found := ExtractGameFromArchive(sampleArchive, "444555666")
	if !found {
		t.Fatalf("expected a match for 444555666")
	}
	if game.White != "carol" || game.Black != "alice" {
		t.Fatalf("expected carol vs alice, got=%s vs %s", game.White, game.Black)
	}
	if !strings.HasPrefix(game.PGN, `[Event "`) {
		t.Fatalf("record marker was not re-prepended: %q", game.PGN[:20])
	}
	if !strings.Contains(game.PGN, "/444555666") {
		t.Fatalf("matched record does not carry the requested id")
	}
	if strings.Contains(game.PGN, "/111222333") {
		t.Fatalf("matched record bleeds into a neighboring game")
	}
}

func TestExtractGameFromArchive_IsIdempotent(t *testing.T) {
	t.Parallel()

	first, okFirst := ExtractGameFromArchive(sampleArchive, "111222333")
	second, okSecond := ExtractGameFromArchive(sampleArchive, "111222333")
	if !okFirst || !okSecond {
		t.Fatalf("expected both scans to match")
	}
	if first != second {
		t.Fatalf("repeated scans disagree: %+v vs %+v", first, second)
	}
}

func TestExtractGameFromArchive_FirstMatchWins(t *testing.T) {
	t.Parallel()

	archive := `[Event "First"]
[White "early"]
[Black "opponent"]
[Link "https://www.chess.com/game/live/777"]

1. e4 1-0

[Event "Second"]
[White "late"]
[Black "opponent"]
[Link "https://www.chess.com/game/live/777"]

1. d4 1-0
`
	game, found := ExtractGameFromArchive(archive, "777")
	if !found {
		t.Fatalf("expected a match")
	}
	if game.White != "early" {
		t.Fatalf("expected the earlier record in document order, got white=%s", game.White)
	}
}

func TestExtractGameFromArchive_MissingHeadersFallBack(t *testing.T) {
	t.Parallel()

	archive := `[Event "Live Chess"]
[Link "https://www.chess.com/game/live/999"]

1. e4 e5 1/2-1/2
`
	game, found := ExtractGameFromArchive(archive, "999")
	if !found {
		t.Fatalf("expected a match")
	}
	if game.White != "White" || game.Black != "Black" {
		t.Fatalf("expected placeholder names, got=%s vs %s", game.White, game.Black)
	}
}

func TestExtractGameFromArchive_NoMatch(t *testing.T) {
	t.Parallel()

	if _, found := ExtractGameFromArchive(sampleArchive, "000000"); found {
		t.Fatalf("expected no match for an unknown id")
	}
	if _, found := ExtractGameFromArchive("", "111222333"); found {
		t.Fatalf("expected no match on an empty archive")
	}
}
