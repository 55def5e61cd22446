package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

func passthroughScanner(archive, gameID string) (chess.GamePGN, bool) {
	if strings.Contains(archive, "/"+gameID) {
		return chess.GamePGN{PGN: archive, White: "scanned-white", Black: "scanned-black"}, true
	}
	return chess.GamePGN{}, false
}

func TestGameLookup_PrefersArchiveScanWhenContextGiven(t *testing.T) {
	provider := &fakeChessProvider{
		monthlyPGN: `[Event "Live Chess"] [Link ".../game/live/123"]`,
		monthlyOK:  true,
		callback:   chess.GamePGN{PGN: "callback-pgn", White: "cb", Black: "cb"},
		callbackOK: true,
	}
	service := NewGameService(provider, passthroughScanner, nil, nil)

	game, err := service.Lookup(context.Background(), "123", "alice", "2024", "06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.White != "scanned-white" {
		t.Fatalf("expected the archive scan result, got white=%s", game.White)
	}
}

func TestGameLookup_FallsBackToCallbackOnScanMiss(t *testing.T) {
	provider := &fakeChessProvider{
		monthlyPGN: `[Event "Live Chess"] [Link ".../game/live/999"]`,
		monthlyOK:  true,
		callback:   chess.GamePGN{PGN: "callback-pgn", White: "cb-white", Black: "cb-black"},
		callbackOK: true,
	}
	service := NewGameService(provider, passthroughScanner, nil, nil)

	game, err := service.Lookup(context.Background(), "123", "alice", "2024", "06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.White != "cb-white" {
		t.Fatalf("expected the callback result, got white=%s", game.White)
	}
}

func TestGameLookup_CallbackOnlyWithoutContext(t *testing.T) {
	provider := &fakeChessProvider{
		monthlyErr: errors.New("must not be called without full context"),
		callback:   chess.GamePGN{PGN: "callback-pgn", White: "cb-white", Black: "cb-black"},
		callbackOK: true,
	}
	service := NewGameService(provider, passthroughScanner, nil, nil)

	game, err := service.Lookup(context.Background(), "123", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.PGN != "callback-pgn" {
		t.Fatalf("expected the callback result, got=%s", game.PGN)
	}
}

func TestGameLookup_NotFoundWhenEverythingMisses(t *testing.T) {
	provider := &fakeChessProvider{
		monthlyOK:   false,
		callbackErr: errors.New("callback down"),
	}
	service := NewGameService(provider, passthroughScanner, nil, nil)

	_, err := service.Lookup(context.Background(), "123", "alice", "2024", "06")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestGameLookup_RequiresGameID(t *testing.T) {
	service := NewGameService(&fakeChessProvider{}, passthroughScanner, nil, nil)
	if _, err := service.Lookup(context.Background(), " ", "", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

type fakeImporter struct {
	gotPGN string
	url    string
	err    error
}

func (f *fakeImporter) Import(_ context.Context, pgn string) (string, error) {
	f.gotPGN = pgn
	return f.url, f.err
}

func TestGameImport_SubmitsLookedUpPGN(t *testing.T) {
	provider := &fakeChessProvider{
		callback:   chess.GamePGN{PGN: "callback-pgn", White: "w", Black: "b"},
		callbackOK: true,
	}
	importer := &fakeImporter{url: "https://lichess.org/abcd1234"}
	service := NewGameService(provider, passthroughScanner, importer, nil)

	analysisURL, err := service.Import(context.Background(), "123", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysisURL != "https://lichess.org/abcd1234" {
		t.Fatalf("unexpected analysis url: %s", analysisURL)
	}
	if importer.gotPGN != "callback-pgn" {
		t.Fatalf("importer received pgn=%q", importer.gotPGN)
	}
}

func TestGameImport_ImporterFailureIsDependencyError(t *testing.T) {
	provider := &fakeChessProvider{
		callback:   chess.GamePGN{PGN: "callback-pgn"},
		callbackOK: true,
	}
	importer := &fakeImporter{err: errors.New("lichess down")}
	service := NewGameService(provider, passthroughScanner, importer, nil)

	_, err := service.Import(context.Background(), "123", "", "", "")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}
