package agent

import (
	"fmt"

	"golang.org/x/exp/rand"

	"tetra/game"
	"tetra/searcher"
)

// Random plays uniformly random legal actions. It is the baseline every
// searching agent should beat.
type Random struct {
	*Tracker
	rng *rand.Rand
}

func NewRandom(setup game.Setup, seed uint64) (*Random, error) {
	tracker, err := NewTracker(setup)
	if err != nil {
		return nil, err
	}
	return &Random{Tracker: tracker, rng: rand.New(rand.NewSource(seed))}, nil
}

func (r *Random) ChooseAction() (game.Action, searcher.Metrics) {
	actions := r.LegalActions()
	if len(actions) == 0 {
		panic(fmt.Sprintf("no actions to choose from while status is %v", r.Status()))
	}
	return actions[r.rng.Intn(len(actions))], searcher.Metrics{}
}
