// Package agent holds the players of a match. Each agent keeps its own
// replica of the game and is told every command the master accepts, its own
// and the opponent's alike, so it never has to trust anyone else's snapshot.
package agent

import (
	"tetra/game"
	"tetra/searcher"
)

// Agent is one seat at the table. ChooseAction is asked only when the game
// waits for this agent's decision; the other methods mirror every accepted
// command into the agent's replica.
type Agent interface {
	ChooseAction() (game.Action, searcher.Metrics)
	PlaceCard(p game.PlaceCard) error
	PickBattle(p game.PickBattle) error
	ResolveBattle(r game.ResolveBattle) error
}
