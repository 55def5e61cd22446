package clashroyale

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchPlayer_RequiresToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.FetchPlayer(context.Background(), "#ABC123")
	if !stderrors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got=%v", err)
	}
}

func TestFetchPlayer_EscapesTagAndSendsBearer(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"tag":"#ABC123","trophies":5400}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "secret-token"})
	res, err := client.FetchPlayer(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/players/%23ABC123" {
		t.Fatalf("expected escaped tag path, got=%s", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("expected bearer auth header, got=%s", gotAuth)
	}
	if res.Status != http.StatusOK {
		t.Fatalf("expected upstream status to pass through, got=%d", res.Status)
	}
	if string(res.Body) != `{"tag":"#ABC123","trophies":5400}` {
		t.Fatalf("expected verbatim body, got=%s", res.Body)
	}
}

func TestFetchPlayer_RelaysUpstreamNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"notFound"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "secret-token"})
	res, err := client.FetchPlayer(context.Background(), "#MISSING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != http.StatusNotFound {
		t.Fatalf("expected 404 to pass through, got=%d", res.Status)
	}
}
