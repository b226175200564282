package simulate

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/okian/playcard/internal/domain/points"
)

// Point generation ranges.
const (
	maxRoundPoints = 50
	minRoundPoints = -10
)

// Shares of generated point values, in percent.
const (
	shareStringValue = 20
	shareMissing     = 5
	shareSkipped     = 10
	shareUnknownID   = 15
)

var playerNames = []string{
	"Ada", "Bram", "Cleo", "Dov", "Esme", "Finn", "Gaia", "Hugo",
	"Iris", "Jude", "Kai", "Lena", "Milo", "Nora", "Otto", "Pia",
}

// generator produces rosters and rounds from a seeded source so runs can be
// reproduced.
type generator struct {
	rnd *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// roster returns n names. Some carry surrounding spaces to exercise trimming.
func (g *generator) roster(game, n int) []string {
	names := make([]string, n)
	for i := range names {
		name := fmt.Sprintf("%s %d", playerNames[(game*n+i)%len(playerNames)], game+1)
		if g.rnd.IntN(4) == 0 {
			name = "  " + name + " "
		}
		names[i] = name
	}
	return names
}

// round returns a points payload for the given player ids: mostly numbers,
// some numeric strings, the odd null, skipped players and an unknown id.
func (g *generator) round(playerIDs []string) map[string]points.Value {
	pts := make(map[string]points.Value, len(playerIDs)+1)
	for _, id := range playerIDs {
		roll := g.rnd.IntN(100)
		n := int64(minRoundPoints + g.rnd.IntN(maxRoundPoints-minRoundPoints+1))
		switch {
		case roll < shareSkipped:
			continue
		case roll < shareSkipped+shareMissing:
			pts[id] = points.Missing()
		case roll < shareSkipped+shareMissing+shareStringValue:
			pts[id] = points.String(strconv.FormatInt(n, 10))
		default:
			pts[id] = points.Int(n)
		}
	}
	if g.rnd.IntN(100) < shareUnknownID {
		pts[fmt.Sprintf("ghost-%d", g.rnd.IntN(1000))] = points.Int(int64(g.rnd.IntN(maxRoundPoints)))
	}
	return pts
}
