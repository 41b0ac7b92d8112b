// Package metrics records what happened in matches and writes the records
// out as CSV for offline analysis.
package metrics

import (
	"time"

	"github.com/google/uuid"

	"tetra/game"
	"tetra/searcher"
)

// MatchRecord summarizes one finished match.
type MatchRecord struct {
	ID        uuid.UUID
	Blue      string // agent name
	Red       string // agent name
	First     game.Player
	Winner    string // winning agent's name, or "draw"
	BlueScore int
	RedScore  int
	Turns     int
	Seed      uint64
	StartTime time.Time
	Duration  time.Duration
}

// MoveRecord captures one decision inside a match.
type MoveRecord struct {
	Match    uuid.UUID
	Step     int
	Player   game.Player
	Action   string
	Duration time.Duration
	Search   searcher.Metrics
}
