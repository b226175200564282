package model

// EventKind names a ledger state change.
type EventKind string

// Ledger event kinds.
const (
	EventGameCreated   EventKind = "game_created"
	EventRoundRecorded EventKind = "round_recorded"
	EventCurrentReset  EventKind = "current_reset"
)

// Event describes one ledger state change. Game carries a snapshot of the
// affected game after the change.
type Event struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	GameID     string    `json:"gameId"`
	RoundID    string    `json:"roundId,omitempty"`
	OccurredAt Timestamp `json:"occurredAt"`
	Game       *Game     `json:"game,omitempty"`
}
