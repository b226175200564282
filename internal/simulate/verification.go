package simulate

import (
	"fmt"
	"strings"

	"github.com/okian/playcard/internal/domain/model"
)

// verifyTotals compares each player's server total with the expected sum.
func verifyTotals(g *model.Game, expected map[string]int64) []string {
	var problems []string
	if len(g.Players) != len(expected) {
		problems = append(problems, fmt.Sprintf("game %s has %d players, expected %d", g.ID, len(g.Players), len(expected)))
	}
	for _, p := range g.Players {
		want, ok := expected[p.ID]
		if !ok {
			problems = append(problems, fmt.Sprintf("game %s: unexpected player %s", g.ID, p.ID))
			continue
		}
		if p.TotalPoints != want {
			problems = append(problems, fmt.Sprintf("game %s: player %s (%s) has %d, expected %d",
				g.ID, p.ID, p.Name, p.TotalPoints, want))
		}
	}
	return problems
}

// verifyRoster checks a freshly created game against the submitted names.
func verifyRoster(g *model.Game, names []string) []string {
	var problems []string
	if len(g.Players) != len(names) {
		return []string{fmt.Sprintf("game %s has %d players, submitted %d", g.ID, len(g.Players), len(names))}
	}
	for i, p := range g.Players {
		if want := strings.TrimSpace(names[i]); p.Name != want {
			problems = append(problems, fmt.Sprintf("game %s: player %d named %q, expected %q", g.ID, i, p.Name, want))
		}
		if p.TotalPoints != 0 {
			problems = append(problems, fmt.Sprintf("game %s: player %q starts at %d", g.ID, p.Name, p.TotalPoints))
		}
	}
	return problems
}

// verifyStandings checks that standings are ordered by total and that equal
// totals share a rank.
func verifyStandings(st []model.Standing, expected map[string]int64) []string {
	var problems []string
	if len(st) != len(expected) {
		problems = append(problems, fmt.Sprintf("standings list %d players, expected %d", len(st), len(expected)))
	}
	for i, s := range st {
		if want, ok := expected[s.PlayerID]; !ok || s.TotalPoints != want {
			problems = append(problems, fmt.Sprintf("standing for %s shows %d, expected %d", s.PlayerID, s.TotalPoints, want))
		}
		if i == 0 {
			if s.Rank != 1 {
				problems = append(problems, fmt.Sprintf("leader has rank %d", s.Rank))
			}
			continue
		}
		prev := st[i-1]
		switch {
		case s.TotalPoints > prev.TotalPoints:
			problems = append(problems, fmt.Sprintf("standings out of order at position %d", i+1))
		case s.TotalPoints == prev.TotalPoints && s.Rank != prev.Rank:
			problems = append(problems, fmt.Sprintf("tied players at position %d have ranks %d and %d", i+1, prev.Rank, s.Rank))
		case s.TotalPoints < prev.TotalPoints && s.Rank != i+1:
			problems = append(problems, fmt.Sprintf("position %d has rank %d", i+1, s.Rank))
		}
	}
	return problems
}
