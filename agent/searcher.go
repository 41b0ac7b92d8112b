package agent

import (
	"tetra/game"
	"tetra/searcher"
)

// Searcher plays by running expectiminimax over its replica.
type Searcher struct {
	*Tracker
	search *searcher.Expectiminimax
}

// NewSearcher builds a searching agent. It collects search metrics unless an
// option overrides the collector.
func NewSearcher(setup game.Setup, maxDepth int, options ...searcher.Option) (*Searcher, error) {
	tracker, err := NewTracker(setup)
	if err != nil {
		return nil, err
	}
	options = append([]searcher.Option{searcher.WithCollector(searcher.NewCollector())}, options...)
	return &Searcher{
		Tracker: tracker,
		search:  searcher.NewExpectiminimax(maxDepth, options...),
	}, nil
}

func (s *Searcher) ChooseAction() (game.Action, searcher.Metrics) {
	return s.search.FindAction(s.Tracker.State())
}
