package searcher

import (
	"fmt"
	"math"

	"tetra/game"
)

type Option func(e *Expectiminimax)

// WithProbCutoff rounds battle outcomes more likely than 1-cutoff up to
// certainty and outcomes less likely than cutoff down to impossibility,
// collapsing lopsided chance nodes to a single branch.
func WithProbCutoff(cutoff float64) Option {
	return func(e *Expectiminimax) {
		if cutoff > 0 {
			e.cutoff = cutoff
		}
	}
}

// WithEvaluateFn overrides the leaf evaluation.
func WithEvaluateFn(evaluate game.Evaluate) Option {
	return func(e *Expectiminimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

// WithPruning toggles alpha-beta pruning. Pruning never changes the selected
// action, only how much of the tree gets expanded.
func WithPruning(enabled bool) Option {
	return func(e *Expectiminimax) {
		e.pruning = enabled
	}
}

// WithCollector sets the collector the search reports its counters to.
func WithCollector(collector Collector) Option {
	return func(e *Expectiminimax) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// Expectiminimax finds the action with the best expected outcome. Decision
// states search as a negamax with the mover maximizing, pending battles
// weigh their branches by win probability. Depth counts placements only:
// battle picks and resolutions within a turn are free.
type Expectiminimax struct {
	maxDepth int
	cutoff   float64
	evaluate game.Evaluate
	pruning  bool
	metrics  Collector
}

func NewExpectiminimax(maxDepth int, options ...Option) *Expectiminimax {
	e := &Expectiminimax{ // Default values
		maxDepth: maxDepth,
		evaluate: game.EvaluateOwnership,
		pruning:  true,
		metrics:  NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.maxDepth < 1 {
		panic("Must search at least one placement deep")
	}
	if e.cutoff < 0 || e.cutoff >= 0.5 {
		panic("Probability cutoff must be within [0, 0.5)")
	}
	return e
}

// FindAction searches the position and returns the best action for the
// player to move, with ties broken toward the first action in LegalActions
// order. It panics when the state waits for no player decision.
func (e *Expectiminimax) FindAction(state *game.GameState) (game.Action, Metrics) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		panic(fmt.Sprintf("no actions to search while status is %v", state.Status()))
	}
	e.metrics.Reset()

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := math.Inf(-1)
	var selected game.Action
	for _, action := range actions {
		child, depth := e.apply(state, action, 0)
		value := e.stateValue(child, depth, alpha, beta)
		if value > best {
			best = value
			selected = action
			if value > alpha {
				alpha = value
			}
		}
	}
	return selected, e.metrics.Metrics()
}

// apply clones state, plays the action and advances the depth when the
// action was a placement.
func (e *Expectiminimax) apply(state *game.GameState, action game.Action, depth int) (*game.GameState, int) {
	child := state.Clone()
	child.Apply(action)
	if _, ok := action.(game.PlaceCard); ok {
		depth++
	}
	return child, depth
}

// stateValue scores child from the perspective of the player whose action
// produced it, dispatching on what the child waits for.
func (e *Expectiminimax) stateValue(child *game.GameState, depth int, alpha, beta float64) float64 {
	e.metrics.AddExpandedNode()
	switch child.Status() {
	case game.StatusResolveBattle:
		return e.chanceValue(child, depth, alpha, beta)
	case game.StatusPlaceCard:
		// The turn passed: the child's value belongs to the opponent.
		return -e.negamaxValue(child, depth, -beta, -alpha)
	case game.StatusPickBattle:
		// Picking a battle stays with the same mover.
		return e.negamaxValue(child, depth, alpha, beta)
	default:
		e.metrics.AddTerminalLeaf()
		return e.evaluate(child, child.Turn())
	}
}

// negamaxValue scores state from the mover's perspective, maximizing over
// its actions.
func (e *Expectiminimax) negamaxValue(state *game.GameState, depth int, alpha, beta float64) float64 {
	if depth >= e.maxDepth {
		e.metrics.AddDepthLimitLeaf()
		return e.evaluate(state, state.Turn())
	}
	value := math.Inf(-1)
	for _, action := range state.LegalActions() {
		child, childDepth := e.apply(state, action, depth)
		v := e.stateValue(child, childDepth, alpha, beta)
		if v > value {
			value = v
			if v > alpha {
				alpha = v
			}
		}
		if e.pruning && alpha >= beta {
			e.metrics.AddPrunedBranch(depth)
			break
		}
	}
	return value
}

// chanceValue weighs the pending battle's branches by probability. A
// weighted branch searches with a fresh window; a certain one passes the
// caller's window through.
func (e *Expectiminimax) chanceValue(state *game.GameState, depth int, alpha, beta float64) float64 {
	outcomes := e.resolutions(state)
	if len(outcomes) > 1 {
		alpha, beta = math.Inf(-1), math.Inf(1)
	}
	value := 0.0
	for _, outcome := range outcomes {
		child := state.Clone()
		child.ResolveWinner(outcome.Winner)
		value += outcome.Probability * e.stateValue(child, depth, alpha, beta)
	}
	return value
}

// resolutions returns the outcome branches to expand, with the probability
// cutoff applied.
func (e *Expectiminimax) resolutions(state *game.GameState) []game.Outcome {
	outcomes := state.BattleDistribution()
	if e.cutoff == 0 || len(outcomes) == 1 {
		return outcomes
	}
	attackerWin := outcomes[0].Probability
	switch {
	case attackerWin < e.cutoff:
		return []game.Outcome{{Winner: game.WinnerDefender, Probability: 1}}
	case attackerWin > 1-e.cutoff:
		return []game.Outcome{{Winner: game.WinnerAttacker, Probability: 1}}
	default:
		return outcomes
	}
}
