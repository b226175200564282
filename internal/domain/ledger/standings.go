package ledger

import (
	"sort"

	"github.com/okian/playcard/internal/domain/model"
)

// RankPlayers orders players by total points, highest first, keeping roster
// order between equal totals. Equal totals share a rank (1, 1, 3).
func RankPlayers(players []model.Player) []model.Standing {
	out := make([]model.Standing, len(players))
	for i, p := range players {
		out[i] = model.Standing{PlayerID: p.ID, Name: p.Name, TotalPoints: p.TotalPoints}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	for i := range out {
		if i > 0 && out[i].TotalPoints == out[i-1].TotalPoints {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
