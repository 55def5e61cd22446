package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

type fakeChessProvider struct {
	mu sync.Mutex

	profiles   map[string]chess.Profile
	profileErr error
	stats      map[string]chess.Stats

	archives     []string
	archivesErr  error
	games        map[string][]ExternalGame
	archiveCalls []string

	deltas    map[string]int
	deltaErrs map[string]error

	online    bool
	onlineErr error

	monthlyPGN  string
	monthlyOK   bool
	monthlyErr  error
	callback    chess.GamePGN
	callbackOK  bool
	callbackErr error
}

func (f *fakeChessProvider) FetchProfile(_ context.Context, username string) (chess.Profile, bool, error) {
	if f.profileErr != nil {
		return chess.Profile{}, false, f.profileErr
	}
	profile, ok := f.profiles[username]
	return profile, ok, nil
}

func (f *fakeChessProvider) FetchStats(_ context.Context, username string) (chess.Stats, error) {
	return f.stats[username], nil
}

func (f *fakeChessProvider) FetchArchiveIndex(_ context.Context, _ string) ([]string, error) {
	return f.archives, f.archivesErr
}

func (f *fakeChessProvider) FetchArchiveGames(_ context.Context, archiveURL string) ([]ExternalGame, error) {
	f.mu.Lock()
	f.archiveCalls = append(f.archiveCalls, archiveURL)
	f.mu.Unlock()
	return f.games[archiveURL], nil
}

func (f *fakeChessProvider) FetchGameRatingDelta(_ context.Context, gameID, _ string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.deltaErrs[gameID]; ok {
		return 0, err
	}
	return f.deltas[gameID], nil
}

func (f *fakeChessProvider) FetchMonthlyPGN(_ context.Context, _, _, _ string) (string, bool, error) {
	return f.monthlyPGN, f.monthlyOK, f.monthlyErr
}

func (f *fakeChessProvider) FetchCallbackGame(_ context.Context, _ string) (chess.GamePGN, bool, error) {
	return f.callback, f.callbackOK, f.callbackErr
}

func (f *fakeChessProvider) FetchIsOnline(_ context.Context, _ string) (bool, error) {
	return f.online, f.onlineErr
}

func archiveGame(id string, endTime int64, white, black string, whiteResult string) ExternalGame {
	blackResult := "win"
	if whiteResult == "win" {
		blackResult = "resigned"
	}
	return ExternalGame{
		URL:       "https://www.chess.com/game/live/" + id,
		EndTime:   endTime,
		TimeClass: "rapid",
		White:     ExternalGameSide{Username: white, Rating: 1500, Result: whiteResult},
		Black:     ExternalGameSide{Username: black, Rating: 1480, Result: blackResult},
	}
}

func TestPlayerDetails_UnknownPlayerIsNotFound(t *testing.T) {
	provider := &fakeChessProvider{profiles: map[string]chess.Profile{}}
	service := NewStatsService(provider, nil, nil, 2)

	_, err := service.PlayerDetails(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestPlayerDetails_FetchesOnlyMostRecentArchive(t *testing.T) {
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{
			"alice": {Username: "alice", AvatarURL: chess.DefaultAvatarURL},
		},
		archives: []string{
			"https://api.chess.com/pub/player/alice/games/2024/05",
			"https://api.chess.com/pub/player/alice/games/2024/06",
		},
		games: map[string][]ExternalGame{
			"https://api.chess.com/pub/player/alice/games/2024/06": {
				archiveGame("1", 100, "alice", "bob", "win"),
			},
		},
	}
	service := NewStatsService(provider, nil, nil, 2)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(provider.archiveCalls); got != 1 {
		t.Fatalf("archive fetch count got=%d want=1", got)
	}
	if provider.archiveCalls[0] != "https://api.chess.com/pub/player/alice/games/2024/06" {
		t.Fatalf("expected the most recent archive, got=%s", provider.archiveCalls[0])
	}
	if got := len(details.Recent); got != 1 {
		t.Fatalf("recent games got=%d want=1", got)
	}
}

func TestPlayerDetails_CapsAtThirtyGames(t *testing.T) {
	archiveURL := "https://api.chess.com/pub/player/alice/games/2024/06"
	games := make([]ExternalGame, 0, 40)
	for i := 0; i < 40; i++ {
		games = append(games, archiveGame(string(rune('a'+i%26))+"x", int64(i), "alice", "bob", "win"))
	}

	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{"alice": {Username: "alice"}},
		archives: []string{archiveURL},
		games:    map[string][]ExternalGame{archiveURL: games},
	}
	service := NewStatsService(provider, nil, nil, 4)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(details.Recent); got != 30 {
		t.Fatalf("recent games got=%d want=30", got)
	}
	if got := len(details.Graph); got != 30 {
		t.Fatalf("graph games got=%d want=30", got)
	}
}

func TestPlayerDetails_GraphAndRecentAreOppositeOrders(t *testing.T) {
	archiveURL := "https://api.chess.com/pub/player/alice/games/2024/06"
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{"alice": {Username: "alice"}},
		archives: []string{archiveURL},
		games: map[string][]ExternalGame{
			archiveURL: {
				archiveGame("1", 100, "alice", "bob", "win"),
				archiveGame("2", 200, "carol", "alice", "timeout"),
				archiveGame("3", 300, "alice", "dave", "resigned"),
			},
		},
	}
	service := NewStatsService(provider, nil, nil, 2)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(details.Graph); got != 3 {
		t.Fatalf("graph size got=%d want=3", got)
	}
	if details.Graph[0].EndTime != 100 || details.Graph[2].EndTime != 300 {
		t.Fatalf("graph is not chronological: %+v", details.Graph)
	}
	if details.Recent[0].EndTime != 300 || details.Recent[2].EndTime != 100 {
		t.Fatalf("recent is not newest first: %+v", details.Recent)
	}
}

func TestPlayerDetails_DeltaFailureIsIsolated(t *testing.T) {
	archiveURL := "https://api.chess.com/pub/player/alice/games/2024/06"
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{"alice": {Username: "alice"}},
		archives: []string{archiveURL},
		games: map[string][]ExternalGame{
			archiveURL: {
				archiveGame("1", 100, "alice", "bob", "win"),
				archiveGame("2", 200, "alice", "carol", "win"),
				archiveGame("3", 300, "alice", "dave", "win"),
			},
		},
		deltas:    map[string]int{"1": 8, "3": 7},
		deltaErrs: map[string]error{"2": errors.New("upstream blew up")},
	}
	service := NewStatsService(provider, nil, nil, 3)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byEndTime := map[int64]chess.GameRecord{}
	for _, record := range details.Recent {
		byEndTime[record.EndTime] = record
	}
	if byEndTime[100].RatingDelta != 8 {
		t.Fatalf("game 1 delta got=%d want=8", byEndTime[100].RatingDelta)
	}
	if byEndTime[200].RatingDelta != 0 {
		t.Fatalf("failed game delta got=%d want=0", byEndTime[200].RatingDelta)
	}
	if byEndTime[300].RatingDelta != 7 {
		t.Fatalf("game 3 delta got=%d want=7", byEndTime[300].RatingDelta)
	}
}

func TestPlayerDetails_OutcomeClassification(t *testing.T) {
	archiveURL := "https://api.chess.com/pub/player/alice/games/2024/06"
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{"alice": {Username: "Alice"}},
		archives: []string{archiveURL},
		games: map[string][]ExternalGame{
			archiveURL: {
				{URL: "u/1", EndTime: 1, White: ExternalGameSide{Username: "ALICE", Result: "win"}, Black: ExternalGameSide{Username: "bob"}},
				{URL: "u/2", EndTime: 2, White: ExternalGameSide{Username: "bob"}, Black: ExternalGameSide{Username: "alice", Result: "timeout"}},
				{URL: "u/3", EndTime: 3, White: ExternalGameSide{Username: "alice", Result: "stalemate"}, Black: ExternalGameSide{Username: "bob"}},
			},
		},
	}
	service := NewStatsService(provider, nil, nil, 2)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[int64]chess.Outcome{1: chess.OutcomeWin, 2: chess.OutcomeLoss, 3: chess.OutcomeDraw}
	for _, record := range details.Recent {
		if record.Outcome != want[record.EndTime] {
			t.Fatalf("game end_time=%d outcome got=%s want=%s", record.EndTime, record.Outcome, want[record.EndTime])
		}
	}
}

func TestPlayerDetails_NoArchivesStillReturnsSummary(t *testing.T) {
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{"alice": {Username: "alice"}},
		stats: map[string]chess.Stats{
			"alice": {Rapid: chess.ModeRating{Current: "1500", Best: "1600"}},
		},
	}
	service := NewStatsService(provider, nil, nil, 2)

	details, err := service.PlayerDetails(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Summary.Rapid.Current != "1500" {
		t.Fatalf("summary rapid got=%s want=1500", details.Summary.Rapid.Current)
	}
	if len(details.Recent) != 0 || len(details.Graph) != 0 {
		t.Fatalf("expected empty game lists, got=%d/%d", len(details.Recent), len(details.Graph))
	}
	if details.Summary.Blitz.Current != chess.RatingUnknown {
		t.Fatalf("expected unrated blitz, got=%s", details.Summary.Blitz.Current)
	}
}
