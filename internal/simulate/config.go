// Package simulate drives a running playcard server through complete games
// and checks that every total it reports matches the locally computed sum.
package simulate

import (
	"io"
	"time"
)

// Default simulation settings.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultGames   = 3
	DefaultPlayers = 4
	DefaultRounds  = 10
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL string        // Base URL of the service
	Games   int           // Number of games to play
	Players int           // Players per game
	Rounds  int           // Rounds per game
	Timeout time.Duration // HTTP request timeout
	Seed    uint64        // Seed for generated rosters and points
	Reset   bool          // Reset the current game when done
	Output  io.Writer     // Where the report is rendered; nil skips rendering
	Verbose bool          // Log every round
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Games < 1 {
		out.Games = DefaultGames
	}
	if out.Players < 2 {
		out.Players = DefaultPlayers
	}
	if out.Rounds < 0 {
		out.Rounds = DefaultRounds
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	return out
}

// Stats holds run statistics.
type Stats struct {
	GamesCreated   int
	RoundsRecorded int
	PointEntries   int
	UnknownEntries int
	Mismatches     int
	RequestsFailed int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
