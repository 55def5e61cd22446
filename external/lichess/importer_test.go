package lichess

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestImport_SendsFormEncodedPGN(t *testing.T) {
	t.Parallel()

	pgn := `[Event "Live Chess"]` + "\n\n1. e4 e5 1-0"

	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"id":"abcd1234","url":"https://lichess.org/abcd1234"}`))
	}))
	defer server.Close()

	importer := NewImporter(ImporterConfig{BaseURL: server.URL}, nil)
	gameURL, err := importer.Import(context.Background(), pgn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gameURL != "https://lichess.org/abcd1234" {
		t.Fatalf("unexpected game url: %s", gameURL)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	if !strings.HasPrefix(gotBody, "pgn=") {
		t.Fatalf("body is not a pgn form field: %s", gotBody)
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(gotBody, "pgn="))
	if err != nil {
		t.Fatalf("body is not query-escaped: %v", err)
	}
	if decoded != pgn {
		t.Fatalf("pgn did not round-trip: %q", decoded)
	}
}

func TestImport_RejectsEmptyPGN(t *testing.T) {
	t.Parallel()

	importer := NewImporter(ImporterConfig{}, nil)
	if _, err := importer.Import(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty pgn")
	}
}

func TestImport_FailsOnUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad pgn", http.StatusBadRequest)
	}))
	defer server.Close()

	importer := NewImporter(ImporterConfig{BaseURL: server.URL}, nil)
	if _, err := importer.Import(context.Background(), "1. e4"); err == nil {
		t.Fatalf("expected an error on upstream 400")
	}
}
