// Package gamemaster is the authority of a match: it owns the true game
// state, vets every submitted action, and draws the random numbers battles
// need.
package gamemaster

import (
	"fmt"

	"golang.org/x/exp/rand"

	"tetra/game"
)

// Master owns the authoritative state of one match. Agents submit actions
// and the master either applies them or rejects them with an error; it never
// trusts a submission enough to let it panic the rules.
type Master struct {
	state *game.GameState
	rng   *rand.Rand
}

// NewMaster validates the setup and seats a match. The seed drives every
// battle roll, so a match replays exactly from its setup and seed.
func NewMaster(setup game.Setup, seed uint64) (*Master, error) {
	state, err := game.NewGame(setup)
	if err != nil {
		return nil, err
	}
	return &Master{state: state, rng: rand.New(rand.NewSource(seed))}, nil
}

// Turn returns the player to move.
func (m *Master) Turn() game.Player {
	return m.state.Turn()
}

// Status returns what the match waits for.
func (m *Master) Status() game.Status {
	return m.state.Status()
}

// Scores counts the board cards each player owns.
func (m *Master) Scores() (blue, red int) {
	return m.state.Scores()
}

// Winner returns the winner once the game is over; ok is false on a draw
// and while the game runs.
func (m *Master) Winner() (winner game.Player, ok bool) {
	return m.state.Winner()
}

// TurnCount returns how many cards have been placed.
func (m *Master) TurnCount() int {
	return m.state.TurnCount()
}

// Submit plays an agent's action if it is legal and returns the events it
// caused. Illegal actions come back as errors and change nothing.
func (m *Master) Submit(action game.Action) ([]game.Event, error) {
	for _, legal := range m.state.LegalActions() {
		if action == legal {
			m.state.Apply(action)
			return m.state.TakeEvents(), nil
		}
	}
	return nil, fmt.Errorf("illegal action %v while status is %v", action, m.state.Status())
}

// RollBattle draws the pending battle's random numbers and resolves it. The
// returned ResolveBattle carries the numbers so agents can replay the same
// resolution on their replicas.
func (m *Master) RollBattle() (game.ResolveBattle, []game.Event, error) {
	if m.state.Status() != game.StatusResolveBattle {
		return game.ResolveBattle{}, nil, fmt.Errorf("no battle to roll while status is %v", m.state.Status())
	}
	attacker, defender := m.state.BattleRolls()
	resolve := game.ResolveBattle{
		AttackRolls: m.draw(attacker),
		DefendRolls: m.draw(defender),
	}
	if err := m.state.ResolveNumbers(resolve); err != nil {
		return game.ResolveBattle{}, nil, err
	}
	return resolve, m.state.TakeEvents(), nil
}

func (m *Master) draw(req game.RollRequest) []int {
	numbers := make([]int, req.Count)
	for i := range numbers {
		numbers[i] = req.Min + m.rng.Intn(req.Max-req.Min+1)
	}
	return numbers
}
