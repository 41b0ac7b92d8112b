package game

import "fmt"

// Event records something that happened while an action was applied. Events
// accumulate on the state until drained with TakeEvents.
type Event interface {
	fmt.Stringer
	isEvent()
}

// NextTurn reports that the turn passed to To.
type NextTurn struct {
	To Player
}

// Flip reports that the card on Cell changed owner, either for losing a
// battle or for sitting under an arrow with no defense.
type Flip struct {
	Cell int
}

// ComboFlip reports that the card on Cell changed owner because a freshly
// flipped card's arrows pointed at it.
type ComboFlip struct {
	Cell int
}

// Battler is one side of a battle: the cell it fought from, the digit it
// rolled with, that digit's value and the final roll.
type Battler struct {
	Cell  int
	Digit Digit
	Value int
	Roll  int
}

// Battle reports a resolved battle. It is emitted before the flips it
// causes.
type Battle struct {
	Attacker Battler
	Defender Battler
	Winner   BattleWinner
}

// GameOver reports the final result. Winner is meaningful only when Draw is
// false.
type GameOver struct {
	Winner Player
	Draw   bool
}

func (NextTurn) isEvent()  {}
func (Flip) isEvent()      {}
func (ComboFlip) isEvent() {}
func (Battle) isEvent()    {}
func (GameOver) isEvent()  {}

func (e NextTurn) String() string {
	return fmt.Sprintf("next turn: %v", e.To)
}

func (e Flip) String() string {
	return fmt.Sprintf("flip %X", e.Cell)
}

func (e ComboFlip) String() string {
	return fmt.Sprintf("combo flip %X", e.Cell)
}

func (e Battle) String() string {
	result := e.Winner.String() + " wins"
	if e.Winner == WinnerNone {
		result = "tied"
	}
	return fmt.Sprintf("battle %X vs %X: %d against %d, %s",
		e.Attacker.Cell, e.Defender.Cell, e.Attacker.Roll, e.Defender.Roll, result)
}

func (e GameOver) String() string {
	if e.Draw {
		return "game over: draw"
	}
	return fmt.Sprintf("game over: %v wins", e.Winner)
}
