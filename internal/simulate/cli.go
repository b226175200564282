package simulate

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/playcard/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging initializes the global logger writing to stdout and to
// logFile. If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	if logFile == "" {
		logFile = "simulate_" + time.Now().Format("20060102_150405") + ".log"
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.InitWithFormat(io.MultiWriter(os.Stdout, file), logger.FormatText); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Playcard Simulator
==================

Plays complete games against a running playcard server and verifies every
total it reports against locally computed sums.

Usage:
  go run ./cmd/simulate [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5000")
  -games int
        Number of games to play (default 3)
  -players int
        Players per game, at least 2 (default 4)
  -rounds int
        Rounds per game (default 10)
  -seed uint
        Seed for rosters and points (default: current time)
  -reset
        Reset the current game when done
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file (default: simulate_TIMESTAMP.log)
  -verbose
        Log every round
  -help
        Show this help message

Examples:
  # Play three games with default settings
  go run ./cmd/simulate

  # Reproduce a run
  go run ./cmd/simulate -seed 42 -games 5 -rounds 20
`)
}
