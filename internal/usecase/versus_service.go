package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/chess"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/rating"
)

// Versus compares two players per time control.
type Versus struct {
	White         chess.PlayerSummary
	Black         chess.PlayerSummary
	Probabilities []VersusProbability
}

// VersusProbability is the Elo win chance for one time control, as
// percentages that sum to 100 for the two sides. Modes where either
// player is unrated are omitted.
type VersusProbability struct {
	Mode        string
	WhiteWinPct int
	BlackWinPct int
}

type VersusService struct {
	stats *StatsService
}

func NewVersusService(stats *StatsService) *VersusService {
	return &VersusService{stats: stats}
}

// Compare fetches both summaries concurrently. Either player being
// unknown fails the comparison with ErrNotFound.
func (s *VersusService) Compare(ctx context.Context, white, black string) (Versus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VersusService.Compare")
	defer span.End()

	white = strings.TrimSpace(white)
	black = strings.TrimSpace(black)
	if white == "" || black == "" {
		return Versus{}, fmt.Errorf("%w: two usernames are required", ErrInvalidInput)
	}

	var (
		whiteSummary, blackSummary chess.PlayerSummary
		whiteErr, blackErr         error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		whiteSummary, whiteErr = s.stats.PlayerSummary(ctx, white)
	})
	wg.Go(func() {
		blackSummary, blackErr = s.stats.PlayerSummary(ctx, black)
	})
	wg.Wait()

	if whiteErr != nil {
		return Versus{}, whiteErr
	}
	if blackErr != nil {
		return Versus{}, blackErr
	}

	out := Versus{
		White:         whiteSummary,
		Black:         blackSummary,
		Probabilities: make([]VersusProbability, 0, 3),
	}

	modes := []struct {
		name  string
		white chess.ModeRating
		black chess.ModeRating
	}{
		{"rapid", whiteSummary.Rapid, blackSummary.Rapid},
		{"blitz", whiteSummary.Blitz, blackSummary.Blitz},
		{"bullet", whiteSummary.Bullet, blackSummary.Bullet},
	}
	for _, mode := range modes {
		whiteElo, okWhite := parseRating(mode.white.Current)
		blackElo, okBlack := parseRating(mode.black.Current)
		if !okWhite || !okBlack {
			continue
		}
		out.Probabilities = append(out.Probabilities, VersusProbability{
			Mode:        mode.name,
			WhiteWinPct: rating.WinProbability(whiteElo, blackElo),
			BlackWinPct: rating.WinProbability(blackElo, whiteElo),
		})
	}

	return out, nil
}

func parseRating(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
