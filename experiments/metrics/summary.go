package metrics

import (
	"time"

	"github.com/google/uuid"

	"tetra/game"
)

// AgentSummary aggregates one agent's decisions across many matches.
type AgentSummary struct {
	Name              string
	Moves             int
	MeanDuration      time.Duration
	MeanExpandedNodes float64
}

// Summarize joins move records to their matches and tallies, per agent
// name, how many decisions it made, how long they took on average and how
// many states the average search expanded. Summaries come back in the order
// the agent names first appear in the match records.
func Summarize(matches []MatchRecord, moves []MoveRecord) []AgentSummary {
	type seats struct{ blue, red string }
	matchSeats := make(map[uuid.UUID]seats, len(matches))
	var order []string
	seen := make(map[string]*AgentSummary)
	add := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = &AgentSummary{Name: name}
			order = append(order, name)
		}
	}
	for _, m := range matches {
		matchSeats[m.ID] = seats{blue: m.Blue, red: m.Red}
		add(m.Blue)
		add(m.Red)
	}

	totals := make(map[string]struct {
		duration time.Duration
		expanded int
	})
	for _, mv := range moves {
		seat, ok := matchSeats[mv.Match]
		if !ok {
			continue
		}
		name := seat.blue
		if mv.Player == game.Red {
			name = seat.red
		}
		seen[name].Moves++
		t := totals[name]
		t.duration += mv.Duration
		t.expanded += mv.Search.ExpandedNodes
		totals[name] = t
	}

	summaries := make([]AgentSummary, 0, len(order))
	for _, name := range order {
		s := *seen[name]
		if s.Moves > 0 {
			s.MeanDuration = totals[name].duration / time.Duration(s.Moves)
			s.MeanExpandedNodes = float64(totals[name].expanded) / float64(s.Moves)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
