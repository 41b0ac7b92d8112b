package agent

import (
	"errors"
	"fmt"

	"tetra/game"
)

// ErrOutOfSync reports a command the replica cannot apply. A replica that
// rejects a command the authority accepted cannot converge again, so callers
// should stop the match rather than play on.
var ErrOutOfSync = errors.New("replica out of sync")

// Tracker maintains a replica of the game from broadcast commands. It
// validates before applying, so a bad command surfaces as an ErrOutOfSync
// error instead of a rules panic.
type Tracker struct {
	state *game.GameState
}

func NewTracker(setup game.Setup) (*Tracker, error) {
	state, err := game.NewGame(setup)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: state}, nil
}

// State returns a copy of the replica, safe to search and mutate.
func (t *Tracker) State() *game.GameState {
	return t.state.Clone()
}

// Turn returns the player to move on the replica.
func (t *Tracker) Turn() game.Player {
	return t.state.Turn()
}

// Status returns what the replica waits for.
func (t *Tracker) Status() game.Status {
	return t.state.Status()
}

// GameOver reports whether the replica reached the end of the game.
func (t *Tracker) GameOver() bool {
	return t.state.IsTerminal()
}

// LegalActions lists the moves open on the replica.
func (t *Tracker) LegalActions() []game.Action {
	return t.state.LegalActions()
}

// PlaceCard mirrors a placement into the replica.
func (t *Tracker) PlaceCard(p game.PlaceCard) error {
	return t.apply(p)
}

// PickBattle mirrors a battle pick into the replica.
func (t *Tracker) PickBattle(p game.PickBattle) error {
	return t.apply(p)
}

// ResolveBattle mirrors drawn battle numbers into the replica.
func (t *Tracker) ResolveBattle(r game.ResolveBattle) error {
	if t.state.Status() != game.StatusResolveBattle {
		return fmt.Errorf("%w: no battle to resolve while status is %v", ErrOutOfSync, t.state.Status())
	}
	if err := t.state.ResolveNumbers(r); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfSync, err)
	}
	t.state.TakeEvents()
	return nil
}

func (t *Tracker) apply(action game.Action) error {
	for _, legal := range t.state.LegalActions() {
		if action == legal {
			t.state.Apply(action)
			t.state.TakeEvents()
			return nil
		}
	}
	return fmt.Errorf("%w: %v is illegal while status is %v", ErrOutOfSync, action, t.state.Status())
}
