// Package experiments pits agents against each other over seeded matches
// and tallies the results.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tetra/agent"
	"tetra/engine"
	"tetra/experiments/metrics"
	"tetra/game"
	"tetra/gamemaster"
	"tetra/searcher"
)

// Agent kinds an AgentSpec may name.
const (
	KindExpectiminimax = "expectiminimax"
	KindRandom         = "random"
)

// AgentSpec describes how to build one contestant.
type AgentSpec struct {
	Name       string
	Kind       string
	Depth      int     // expectiminimax: placements to search ahead
	Cutoff     float64 // expectiminimax: probability cutoff, 0 to disable
	EvalWeight float64 // expectiminimax: arrow pressure weight, 0 for plain ownership
}

// Arena plays every ordered pairing of agents over Games matches, each with
// a fresh random setup. Seats matter: each pairing is played both ways.
type Arena struct {
	Games  int
	Seed   uint64
	System game.BattleSystem
	Agents []AgentSpec
}

// Standing is one agent's tally across the arena.
type Standing struct {
	Name   string
	Wins   int
	Losses int
	Draws  int
}

// Run plays out the arena. Standings come back in the order the agents were
// declared.
func (a Arena) Run() ([]Standing, []metrics.MatchRecord, []metrics.MoveRecord, error) {
	rng := rand.New(rand.NewSource(a.Seed))
	standings := make(map[string]*Standing, len(a.Agents))
	for _, spec := range a.Agents {
		standings[spec.Name] = &Standing{Name: spec.Name}
	}

	var matchRecords []metrics.MatchRecord
	var moveRecords []metrics.MoveRecord
	for _, blue := range a.Agents {
		for _, red := range a.Agents {
			if blue.Name == red.Name {
				continue
			}
			log.Info().Msgf("pairing %s (blue) vs %s (red) over %d games...", blue.Name, red.Name, a.Games)

			for i := 0; i < a.Games; i++ {
				setup := gamemaster.RandomSetup(a.System, rng)
				matchSeed := rng.Uint64()
				blueSeed := rng.Uint64()
				redSeed := rng.Uint64()

				match, moves, err := runMatch(setup, matchSeed, seat{blue, blueSeed}, seat{red, redSeed})
				if err != nil {
					return nil, nil, nil, err
				}
				matchRecords = append(matchRecords, match)
				moveRecords = append(moveRecords, moves...)

				switch match.Winner {
				case blue.Name:
					standings[blue.Name].Wins++
					standings[red.Name].Losses++
				case red.Name:
					standings[red.Name].Wins++
					standings[blue.Name].Losses++
				default:
					standings[blue.Name].Draws++
					standings[red.Name].Draws++
				}
			}
		}
	}

	results := make([]Standing, 0, len(a.Agents))
	for _, spec := range a.Agents {
		results = append(results, *standings[spec.Name])
	}
	return results, matchRecords, moveRecords, nil
}

type seat struct {
	spec AgentSpec
	seed uint64
}

func runMatch(setup game.Setup, matchSeed uint64, blue, red seat) (metrics.MatchRecord, []metrics.MoveRecord, error) {
	blueAgent, err := buildAgent(blue.spec, setup, blue.seed)
	if err != nil {
		return metrics.MatchRecord{}, nil, fmt.Errorf("agent %s: %w", blue.spec.Name, err)
	}
	redAgent, err := buildAgent(red.spec, setup, red.seed)
	if err != nil {
		return metrics.MatchRecord{}, nil, fmt.Errorf("agent %s: %w", red.spec.Name, err)
	}
	e, err := engine.NewLocalEngine(setup, matchSeed,
		engine.Player{Name: blue.spec.Name, Agent: blueAgent},
		engine.Player{Name: red.spec.Name, Agent: redAgent})
	if err != nil {
		return metrics.MatchRecord{}, nil, err
	}
	return e.Run()
}

func buildAgent(spec AgentSpec, setup game.Setup, seed uint64) (agent.Agent, error) {
	switch spec.Kind {
	case KindExpectiminimax:
		options := []searcher.Option{}
		if spec.Cutoff > 0 {
			options = append(options, searcher.WithProbCutoff(spec.Cutoff))
		}
		if spec.EvalWeight > 0 {
			options = append(options, searcher.WithEvaluateFn(game.NewWeightedEvaluate(spec.EvalWeight)))
		}
		return agent.NewSearcher(setup, spec.Depth, options...)
	case KindRandom:
		return agent.NewRandom(setup, seed)
	default:
		return nil, fmt.Errorf("unknown agent kind %q", spec.Kind)
	}
}
