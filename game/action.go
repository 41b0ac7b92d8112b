package game

import "fmt"

// Action is a move a player can submit. PlaceCard and PickBattle are the
// only implementations.
type Action interface {
	fmt.Stringer
	isAction()
}

// PlaceCard puts the card at CardIndex in the mover's hand onto Cell.
type PlaceCard struct {
	CardIndex int
	Cell      int
}

// PickBattle chooses which of several simultaneous defenders the placed
// card fights first.
type PickBattle struct {
	Cell int
}

func (PlaceCard) isAction()  {}
func (PickBattle) isAction() {}

func (a PlaceCard) String() string {
	return fmt.Sprintf("place(%X, %X)", a.CardIndex, a.Cell)
}

func (a PickBattle) String() string {
	return fmt.Sprintf("pick(%X)", a.Cell)
}

// ResolveBattle carries the random numbers that decide the pending battle,
// one slice per battler, shaped as the battle system's RollRequest asks.
type ResolveBattle struct {
	AttackRolls []int
	DefendRolls []int
}

func (r ResolveBattle) String() string {
	return fmt.Sprintf("resolve(%v, %v)", r.AttackRolls, r.DefendRolls)
}
