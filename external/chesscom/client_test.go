package chesscom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL:         server.URL,
		CallbackBaseURL: server.URL,
	})
}

func TestFetchProfile_NotFoundOnUpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":0,"message":"User not found"}`, http.StatusNotFound)
	}))

	_, found, err := client.FetchProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected profile to be reported as not found")
	}
}

func TestFetchProfile_AppliesAvatarFallback(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"Hikaru","country":"https://api.chess.com/pub/country/US","url":"https://www.chess.com/member/Hikaru","last_online":1700000000}`))
	}))

	profile, found, err := client.FetchProfile(context.Background(), "Hikaru")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected profile to be found")
	}
	if profile.AvatarURL != chess.DefaultAvatarURL {
		t.Fatalf("expected default avatar, got=%s", profile.AvatarURL)
	}
	if profile.LastOnline != 1700000000 {
		t.Fatalf("expected last_online to survive, got=%d", profile.LastOnline)
	}
}

func TestFetchStats_MissingModesReadAsUnrated(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chess_rapid":{"last":{"rating":1523},"best":{"rating":1601}}}`))
	}))

	stats, err := client.FetchStats(context.Background(), "casual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Rapid.Current != "1523" || stats.Rapid.Best != "1601" {
		t.Fatalf("rapid ratings mismatched: %+v", stats.Rapid)
	}
	if stats.Blitz.Current != chess.RatingUnknown || stats.Bullet.Best != chess.RatingUnknown {
		t.Fatalf("expected missing modes to read as %s, got=%+v", chess.RatingUnknown, stats)
	}
}

func TestFetchGameRatingDelta_PicksTrackedPlayersSide(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"white":{"username":"Alice","rating_adjustment":8},"black":{"username":"Bob","rating_adjustment":-8}}`))
	}))

	delta, err := client.FetchGameRatingDelta(context.Background(), "12345", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 8 {
		t.Fatalf("expected white side delta 8, got=%d", delta)
	}

	delta, err = client.FetchGameRatingDelta(context.Background(), "12345", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -8 {
		t.Fatalf("expected black side delta -8, got=%d", delta)
	}
}

func TestFetchGameRatingDelta_DefaultsOnUpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	delta, err := client.FetchGameRatingDelta(context.Background(), "12345", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 0 {
		t.Fatalf("expected zero delta, got=%d", delta)
	}
}

func TestFetchCallbackGame_RequiresPGN(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"game":{"white":{"username":"a"},"black":{"username":"b"}}}`))
	}))

	_, found, err := client.FetchCallbackGame(context.Background(), "777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected a pgn-less payload to count as not found")
	}
}

func TestFetchIsOnline(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"online"}`))
	}))

	online, err := client.FetchIsOnline(context.Background(), "speedrunner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !online {
		t.Fatalf("expected online")
	}
}

