package game

// Evaluate scores a position from p's point of view; higher is better for p.
// Implementations must be antisymmetric, scoring the opponent at the exact
// negation, because searches flip signs instead of re-evaluating.
type Evaluate func(g *GameState, p Player) float64

// EvaluateOwnership scores the raw board card difference. It is the
// reference heuristic: once the game is over it is positive exactly for the
// winner and zero on a draw.
func EvaluateOwnership(g *GameState, p Player) float64 {
	own, other := g.calculateOwnershipCounts(p)
	return own - other
}

// EvaluateMaterial scores the normalized worth of each side's cards, hands
// included, weighing stronger card types higher.
func EvaluateMaterial(g *GameState, p Player) float64 {
	own, other := g.calculateMaterialScores(p)
	return normalize(own, other)
}

// NewWeightedEvaluate blends the ownership difference with the arrow
// pressure both sides exert on each other. A weight of zero reduces to
// EvaluateOwnership.
func NewWeightedEvaluate(weight float64) Evaluate {
	return func(g *GameState, p Player) float64 {
		score := EvaluateOwnership(g, p)
		if weight == 0 {
			return score
		}
		own, other := g.calculatePressureScores(p)
		return score + weight*(own-other)
	}
}

func (g *GameState) calculateOwnershipCounts(p Player) (own, other float64) {
	return float64(g.board.OwnedBy(p).Count()), float64(g.board.OwnedBy(p.Opponent()).Count())
}

func (g *GameState) calculateMaterialScores(p Player) (own, other float64) {
	for cell := 0; cell < BoardSize; cell++ {
		c := g.board[cell]
		if c.Kind != CellOccupied {
			continue
		}
		if c.Owner == p {
			own += cardWeight(c.Card)
		} else {
			other += cardWeight(c.Card)
		}
	}
	for i := 0; i < HandSize; i++ {
		if card, ok := g.hands[p].Card(i); ok {
			own += cardWeight(card)
		}
		if card, ok := g.hands[p.Opponent()].Card(i); ok {
			other += cardWeight(card)
		}
	}
	return own, other
}

// calculatePressureScores tallies, per side, how many of its arrows aim at
// opposing cards. Pressure approximates the flips a side could still cash
// in.
func (g *GameState) calculatePressureScores(p Player) (own, other float64) {
	for cell := 0; cell < BoardSize; cell++ {
		c := g.board[cell]
		if c.Kind != CellOccupied {
			continue
		}
		pressure := 0.0
		for _, n := range neighbours[cell] {
			if !c.Card.Arrows.Has(n.arrow) {
				continue
			}
			target := g.board[n.cell]
			if target.Kind == CellOccupied && target.Owner != c.Owner {
				pressure++
			}
		}
		pressure /= BoardSize
		if c.Owner == p {
			own += pressure
		} else {
			other += pressure
		}
	}
	return own, other
}

// cardWeight estimates how much a card is worth: a base for its type plus a
// share for its stat total.
func cardWeight(c Card) float64 {
	weight := float64(c.Attack+c.PhysicalDefense+c.MagicalDefense) / (3 * MaxStat)
	switch c.Type {
	case Exploit:
		return weight + 1.75
	case Assault:
		return weight + 3.25
	default:
		return weight + 1
	}
}

// normalize converts two tallies into a score between -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
