package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/playcard/internal/simulate"
	"github.com/okian/playcard/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", simulate.DefaultBaseURL, "Base URL of the service")
		games   = flag.Int("games", simulate.DefaultGames, "Number of games to play")
		players = flag.Int("players", simulate.DefaultPlayers, "Players per game, at least 2")
		rounds  = flag.Int("rounds", simulate.DefaultRounds, "Rounds per game")
		seed    = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for rosters and points")
		reset   = flag.Bool("reset", false, "Reset the current game when done")
		timeout = flag.Duration("timeout", simulate.DefaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file (default: simulate_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Log every round")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	closer, err := simulate.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	lg := logger.Named("simulate")
	lg.Info(ctx, "using seed", logger.Any("seed", *seed))

	config := &simulate.Config{
		BaseURL: *baseURL,
		Games:   *games,
		Players: *players,
		Rounds:  *rounds,
		Seed:    *seed,
		Reset:   *reset,
		Timeout: *timeout,
		Output:  os.Stdout,
		Verbose: *verbose,
	}

	if _, err := simulate.Run(ctx, config, lg); err != nil {
		lg.Error(ctx, "simulation failed", logger.Error(err))
		cancel()
		closer.Close()
		os.Exit(1)
	}
}
