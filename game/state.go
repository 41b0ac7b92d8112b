package game

import (
	"errors"
	"fmt"
)

// Status tells whose input the state is waiting for.
type Status uint8

const (
	StatusPlaceCard Status = iota
	StatusPickBattle
	StatusResolveBattle
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaceCard:
		return "place card"
	case StatusPickBattle:
		return "pick battle"
	case StatusResolveBattle:
		return "resolve battle"
	default:
		return "game over"
	}
}

// Setup describes a fresh game: the battle system, the blocked cells, both
// hands and who moves first.
type Setup struct {
	System   BattleSystem
	Blocked  CellSet
	HandBlue []Card
	HandRed  []Card
	First    Player
}

// pendingBattle carries the attacker and its chosen defender while a battle
// awaits resolution, or the attacker and all defender choices while the
// mover still has to pick one.
type pendingBattle struct {
	attacker int
	defender int
	choices  CellSet
}

// GameState is a full game position. It is cheap to Clone: the board and
// hands are plain value arrays, so copies never share backing storage.
type GameState struct {
	system BattleSystem
	board  Board
	hands  [2]Hand
	turn   Player
	status Status
	turns  int
	battle pendingBattle
	winner Player
	draw   bool
	events []Event
}

// NewGame validates the setup and returns the starting position.
func NewGame(setup Setup) (*GameState, error) {
	if err := setup.System.validate(); err != nil {
		return nil, err
	}
	if n := setup.Blocked.Count(); n > MaxBlockedCells {
		return nil, fmt.Errorf("%d blocked cells, at most %d allowed", n, MaxBlockedCells)
	}
	if len(setup.HandBlue) == 0 || len(setup.HandBlue) > HandSize {
		return nil, fmt.Errorf("blue hand of %d cards, must be 1 to %d", len(setup.HandBlue), HandSize)
	}
	if len(setup.HandRed) != len(setup.HandBlue) {
		return nil, errors.New("both hands must hold the same number of cards")
	}
	for _, c := range setup.HandBlue {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	for _, c := range setup.HandRed {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	if setup.First != Blue && setup.First != Red {
		return nil, fmt.Errorf("unknown first player %d", setup.First)
	}

	g := &GameState{system: setup.System, turn: setup.First, status: StatusPlaceCard}
	for _, cell := range setup.Blocked.Cells() {
		g.board[cell].Kind = CellBlocked
	}
	g.hands[Blue] = NewHand(setup.HandBlue...)
	g.hands[Red] = NewHand(setup.HandRed...)
	return g, nil
}

// Turn returns the player to move. While a battle resolves it is still the
// player whose placement caused it.
func (g *GameState) Turn() Player {
	return g.turn
}

// Status returns what the state is waiting for.
func (g *GameState) Status() Status {
	return g.status
}

// TurnCount returns how many cards have been placed so far.
func (g *GameState) TurnCount() int {
	return g.turns
}

// System returns the battle system the game was set up with.
func (g *GameState) System() BattleSystem {
	return g.system
}

// CellAt returns the board cell at the given index.
func (g *GameState) CellAt(cell int) Cell {
	return g.board[cell]
}

// HandOf returns p's hand.
func (g *GameState) HandOf(p Player) Hand {
	return g.hands[p]
}

// IsTerminal reports whether the game is over.
func (g *GameState) IsTerminal() bool {
	return g.status == StatusGameOver
}

// Winner returns the player holding more board cards once the game is over.
// ok is false while the game still runs and when it ended in a draw.
func (g *GameState) Winner() (winner Player, ok bool) {
	if g.status != StatusGameOver || g.draw {
		return 0, false
	}
	return g.winner, true
}

// Scores counts the board cards each player owns.
func (g *GameState) Scores() (blue, red int) {
	return g.board.OwnedBy(Blue).Count(), g.board.OwnedBy(Red).Count()
}

// PendingBattle returns the attacker and defender cells of the battle
// awaiting resolution. It panics unless the status is StatusResolveBattle.
func (g *GameState) PendingBattle() (attacker, defender int) {
	if g.status != StatusResolveBattle {
		panic(fmt.Sprintf("no pending battle while status is %v", g.status))
	}
	return g.battle.attacker, g.battle.defender
}

// BattleChoices returns the attacker cell and the defender cells the mover
// may pick from. It panics unless the status is StatusPickBattle.
func (g *GameState) BattleChoices() (attacker int, choices CellSet) {
	if g.status != StatusPickBattle {
		panic(fmt.Sprintf("no battle to pick while status is %v", g.status))
	}
	return g.battle.attacker, g.battle.choices
}

// LegalActions lists the moves open to the player to move. Placements come
// cell first, then hand slot; battle picks come in ascending cell order. The
// fixed order is what makes searches and tie-breaks reproducible.
func (g *GameState) LegalActions() []Action {
	switch g.status {
	case StatusPlaceCard:
		hand := g.hands[g.turn]
		empty := g.board.EmptyCells()
		actions := make([]Action, 0, empty.Count()*hand.Size())
		for _, cell := range empty.Cells() {
			for i := 0; i < HandSize; i++ {
				if _, ok := hand.Card(i); ok {
					actions = append(actions, PlaceCard{CardIndex: i, Cell: cell})
				}
			}
		}
		return actions
	case StatusPickBattle:
		cells := g.battle.choices.Cells()
		actions := make([]Action, 0, len(cells))
		for _, cell := range cells {
			actions = append(actions, PickBattle{Cell: cell})
		}
		return actions
	default:
		return nil
	}
}

// Apply plays action on the state in place. Illegal actions panic: callers
// validate input at the boundary, the rules only guarantee consistency.
func (g *GameState) Apply(action Action) {
	switch a := action.(type) {
	case PlaceCard:
		g.placeCard(a)
	case PickBattle:
		g.pickBattle(a)
	default:
		panic(fmt.Sprintf("unknown action %v", action))
	}
}

func (g *GameState) placeCard(a PlaceCard) {
	if g.status != StatusPlaceCard {
		panic(fmt.Sprintf("cannot place a card while status is %v", g.status))
	}
	card, ok := g.hands[g.turn].Card(a.CardIndex)
	if !ok {
		panic(fmt.Sprintf("hand slot %X is empty", a.CardIndex))
	}
	if a.Cell < 0 || a.Cell >= BoardSize || g.board[a.Cell].Kind != CellEmpty {
		panic(fmt.Sprintf("cell %X is not open", a.Cell))
	}
	g.hands[g.turn].remove(a.CardIndex)
	g.board[a.Cell] = Cell{Kind: CellOccupied, Owner: g.turn, Card: card}
	g.turns++
	g.resolveInteractions(a.Cell)
}

func (g *GameState) pickBattle(a PickBattle) {
	if g.status != StatusPickBattle {
		panic(fmt.Sprintf("cannot pick a battle while status is %v", g.status))
	}
	if !g.battle.choices.Has(a.Cell) {
		panic(fmt.Sprintf("cell %X is not among the pending defenders", a.Cell))
	}
	g.startBattle(g.battle.attacker, a.Cell)
}

// resolveInteractions works out what the card on the attacker cell does to
// its arrow neighbours. Opposing cards without a matching counter arrow flip
// outright, but only once no defender is left; cards whose own arrow points
// back must be beaten in battle first, and with several defenders the mover
// picks the order.
func (g *GameState) resolveInteractions(attacker int) {
	owner := g.board[attacker].Owner
	card := g.board[attacker].Card
	var defenders, exposed CellSet
	for _, n := range neighbours[attacker] {
		if !card.Arrows.Has(n.arrow) {
			continue
		}
		target := g.board[n.cell]
		if target.Kind != CellOccupied || target.Owner == owner {
			continue
		}
		if target.Card.Arrows.Has(n.arrow.Opposite()) {
			defenders = defenders.With(n.cell)
		} else {
			exposed = exposed.With(n.cell)
		}
	}
	switch defenders.Count() {
	case 0:
		for _, cell := range exposed.Cells() {
			g.flip(cell, false)
		}
		g.endTurn()
	case 1:
		g.startBattle(attacker, defenders.First())
	default:
		g.status = StatusPickBattle
		g.battle = pendingBattle{attacker: attacker, choices: defenders}
	}
}

func (g *GameState) startBattle(attacker, defender int) {
	g.status = StatusResolveBattle
	g.battle = pendingBattle{attacker: attacker, defender: defender}
}

// BattleDistribution returns the outcomes of the pending battle with the
// attacker's branch first. A battle the attacker cannot win, or cannot lose,
// collapses to a single branch. It panics unless the status is
// StatusResolveBattle.
func (g *GameState) BattleDistribution() []Outcome {
	if g.status != StatusResolveBattle {
		panic(fmt.Sprintf("no pending battle while status is %v", g.status))
	}
	attackerCard := g.board[g.battle.attacker].Card
	defenderCard := g.board[g.battle.defender].Card
	attack, _ := AttackStat(attackerCard)
	defend, _ := DefendStat(attackerCard, defenderCard)
	p := g.system.WinProbability(attack, defend)
	switch {
	case p >= 1:
		return []Outcome{{Winner: WinnerAttacker, Probability: 1}}
	case p <= 0:
		return []Outcome{{Winner: WinnerDefender, Probability: 1}}
	default:
		return []Outcome{
			{Winner: WinnerAttacker, Probability: p},
			{Winner: WinnerDefender, Probability: 1 - p},
		}
	}
}

// BattleRolls describes the random numbers each battler of the pending
// battle needs, attacker first. It panics unless the status is
// StatusResolveBattle.
func (g *GameState) BattleRolls() (attacker, defender RollRequest) {
	if g.status != StatusResolveBattle {
		panic(fmt.Sprintf("no pending battle while status is %v", g.status))
	}
	attackerCard := g.board[g.battle.attacker].Card
	defenderCard := g.board[g.battle.defender].Card
	attack, _ := AttackStat(attackerCard)
	defend, _ := DefendStat(attackerCard, defenderCard)
	return g.system.RollRequest(attack), g.system.RollRequest(defend)
}

// ResolveWinner settles the pending battle with a known winner. Searches use
// it to expand chance branches without drawing numbers, so no Battle event
// is recorded. It panics unless the status is StatusResolveBattle.
func (g *GameState) ResolveWinner(winner BattleWinner) {
	if g.status != StatusResolveBattle {
		panic(fmt.Sprintf("no pending battle while status is %v", g.status))
	}
	g.applyBattleOutcome(winner)
}

// ResolveNumbers settles the pending battle from drawn random numbers, one
// slice per battler as described by BattleRolls. Malformed numbers return an
// error and leave the state untouched. It panics unless the status is
// StatusResolveBattle.
func (g *GameState) ResolveNumbers(resolve ResolveBattle) error {
	if g.status != StatusResolveBattle {
		panic(fmt.Sprintf("no pending battle while status is %v", g.status))
	}
	attackerCard := g.board[g.battle.attacker].Card
	defenderCard := g.board[g.battle.defender].Card
	attack, attackDigit := AttackStat(attackerCard)
	defend, defendDigit := DefendStat(attackerCard, defenderCard)
	attackRoll, err := g.system.resolve(attack, resolve.AttackRolls)
	if err != nil {
		return fmt.Errorf("attacker: %w", err)
	}
	defendRoll, err := g.system.resolve(defend, resolve.DefendRolls)
	if err != nil {
		return fmt.Errorf("defender: %w", err)
	}
	winner := battleWinnerFromRolls(attackRoll, defendRoll)
	g.push(Battle{
		Attacker: Battler{Cell: g.battle.attacker, Digit: attackDigit, Value: int(attack), Roll: attackRoll},
		Defender: Battler{Cell: g.battle.defender, Digit: defendDigit, Value: int(defend), Roll: defendRoll},
		Winner:   winner,
	})
	g.applyBattleOutcome(winner)
	return nil
}

// applyBattleOutcome flips the loser, combos off it, and either chases
// further battles from the attacker cell or ends the turn. A tie counts
// against the attacker.
func (g *GameState) applyBattleOutcome(winner BattleWinner) {
	attacker, defender := g.battle.attacker, g.battle.defender
	g.battle = pendingBattle{}
	loser := defender
	if winner != WinnerAttacker {
		loser = attacker
	}
	g.flip(loser, false)
	g.comboFlip(loser)
	if winner == WinnerAttacker {
		g.resolveInteractions(attacker)
		return
	}
	g.endTurn()
}

// comboFlip flips the cards the fresh loser's arrows point at, provided
// they still belong to the losing side. Combos reach one level: they never
// start battles or further combos.
func (g *GameState) comboFlip(loser int) {
	losing := g.board[loser].Owner.Opponent()
	card := g.board[loser].Card
	for _, cell := range arrowTargets(card.Arrows, loser).Cells() {
		target := g.board[cell]
		if target.Kind == CellOccupied && target.Owner == losing {
			g.flip(cell, true)
		}
	}
}

func (g *GameState) flip(cell int, combo bool) {
	g.board[cell].Owner = g.board[cell].Owner.Opponent()
	if combo {
		g.push(ComboFlip{Cell: cell})
	} else {
		g.push(Flip{Cell: cell})
	}
}

// endTurn passes the turn, or finishes the game once both hands are empty.
// The turn does not pass on the final placement: the loser of the last
// battle does not get a phantom move.
func (g *GameState) endTurn() {
	if g.hands[Blue].IsEmpty() && g.hands[Red].IsEmpty() {
		g.status = StatusGameOver
		blue, red := g.Scores()
		switch {
		case blue > red:
			g.winner = Blue
		case red > blue:
			g.winner = Red
		default:
			g.draw = true
		}
		g.push(GameOver{Winner: g.winner, Draw: g.draw})
		return
	}
	g.status = StatusPlaceCard
	g.turn = g.turn.Opponent()
	g.push(NextTurn{To: g.turn})
}

func (g *GameState) push(e Event) {
	g.events = append(g.events, e)
}

// TakeEvents drains and returns the events recorded since the last call.
func (g *GameState) TakeEvents() []Event {
	events := g.events
	g.events = nil
	return events
}

// Clone returns an independent copy. Undrained events stay with the
// original.
func (g *GameState) Clone() *GameState {
	clone := *g
	clone.events = nil
	return &clone
}
