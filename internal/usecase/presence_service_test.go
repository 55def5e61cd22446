package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
)

func TestPresenceCheck_RecentActivityIsOnline(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{
			"alice": {Username: "alice", LastOnline: now.Unix() - 120},
		},
	}
	service := NewPresenceService(provider, nil)
	service.now = func() time.Time { return now }

	status := service.Check(context.Background(), "alice")
	if !status.Online {
		t.Fatalf("expected online within the recency window")
	}
	if status.LastSeen != 120 {
		t.Fatalf("last seen got=%d want=120", status.LastSeen)
	}
	if status.Source != "" {
		t.Fatalf("recency hits carry no source, got=%s", status.Source)
	}
}

func TestPresenceCheck_StaleActivityFallsBackToStatusEndpoint(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{
			"alice": {Username: "alice", LastOnline: now.Unix() - 3600},
		},
		online: true,
	}
	service := NewPresenceService(provider, nil)
	service.now = func() time.Time { return now }

	status := service.Check(context.Background(), "alice")
	if !status.Online {
		t.Fatalf("expected online via the status endpoint")
	}
	if status.Source != presenceSourceAPIStatus {
		t.Fatalf("source got=%s want=%s", status.Source, presenceSourceAPIStatus)
	}
}

func TestPresenceCheck_WindowBoundaryIsExclusive(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	provider := &fakeChessProvider{
		profiles: map[string]chess.Profile{
			"alice": {Username: "alice", LastOnline: now.Unix() - 300},
		},
	}
	service := NewPresenceService(provider, nil)
	service.now = func() time.Time { return now }

	if status := service.Check(context.Background(), "alice"); status.Online {
		t.Fatalf("exactly 300 seconds ago is outside the window")
	}
}

func TestPresenceCheck_FailuresReadAsOffline(t *testing.T) {
	t.Run("profile error", func(t *testing.T) {
		provider := &fakeChessProvider{profileErr: errors.New("boom")}
		service := NewPresenceService(provider, nil)
		if status := service.Check(context.Background(), "alice"); status.Online {
			t.Fatalf("expected offline on profile failure")
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		provider := &fakeChessProvider{profiles: map[string]chess.Profile{}}
		service := NewPresenceService(provider, nil)
		if status := service.Check(context.Background(), "ghost"); status.Online {
			t.Fatalf("expected offline for an unknown player")
		}
	})

	t.Run("status endpoint error", func(t *testing.T) {
		provider := &fakeChessProvider{
			profiles:  map[string]chess.Profile{"alice": {Username: "alice", LastOnline: 1}},
			onlineErr: errors.New("boom"),
		}
		service := NewPresenceService(provider, nil)
		if status := service.Check(context.Background(), "alice"); status.Online {
			t.Fatalf("expected offline on status endpoint failure")
		}
	})

	t.Run("empty username", func(t *testing.T) {
		service := NewPresenceService(&fakeChessProvider{}, nil)
		if status := service.Check(context.Background(), "  "); status.Online {
			t.Fatalf("expected offline for an empty username")
		}
	})
}
