package engine

import "tetra/experiments/metrics"

// Engine plays one match to the end.
type Engine interface {
	// Run blocks until the game is decided. It returns the match record
	// together with one record per decision an agent made.
	Run() (metrics.MatchRecord, []metrics.MoveRecord, error)
}
