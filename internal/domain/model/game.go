// Package model contains domain models passed between layers.
package model

import (
	"github.com/okian/playcard/internal/domain/points"
)

// Player is one roster entry of a game. TotalPoints is only changed by
// recording rounds.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"totalPoints"`
}

// Round is one recorded set of point deltas, keyed by player id. Points are
// kept exactly as submitted; unknown ids stay in the record.
type Round struct {
	ID        string                  `json:"id"`
	Points    map[string]points.Value `json:"points"`
	Timestamp Timestamp               `json:"timestamp"`
}

// Game is a scored session with a fixed roster and an append-only round history.
type Game struct {
	ID        string    `json:"id"`
	Players   []Player  `json:"players"`
	Rounds    []Round   `json:"rounds"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Standing is a player's position in a game ordered by total points.
type Standing struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"totalPoints"`
}

// Player returns a pointer to the roster entry with the given id.
func (g *Game) Player(id string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := &Game{
		ID:        g.ID,
		Players:   make([]Player, len(g.Players)),
		Rounds:    make([]Round, len(g.Rounds)),
		CreatedAt: g.CreatedAt,
	}
	copy(out.Players, g.Players)
	for i, r := range g.Rounds {
		out.Rounds[i] = r.Clone()
	}
	return out
}

// Clone returns a deep copy of the round.
func (r Round) Clone() Round {
	pts := make(map[string]points.Value, len(r.Points))
	for k, v := range r.Points {
		pts[k] = v.Clone()
	}
	return Round{ID: r.ID, Points: pts, Timestamp: r.Timestamp}
}
