// Package engine runs matches: it seats two agents against the gamemaster
// and pumps commands between them until the game is decided.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tetra/agent"
	"tetra/experiments/metrics"
	"tetra/game"
	"tetra/gamemaster"
)

// Player binds an agent to a seat and a display name.
type Player struct {
	Name  string
	Agent agent.Agent
}

// MaxCommands caps the commands one match may process before Run errors out.
const MaxCommands = 200

// LocalEngine runs one match in process: one master as the authority, two
// agents tracking replicas, every accepted command broadcast to both.
type LocalEngine struct {
	master  *gamemaster.Master
	players [2]Player
	seed    uint64
	first   game.Player
}

// NewLocalEngine seats a match. Both agents must have been built from the
// same setup, or their replicas diverge on the first command.
func NewLocalEngine(setup game.Setup, seed uint64, blue, red Player) (*LocalEngine, error) {
	master, err := gamemaster.NewMaster(setup, seed)
	if err != nil {
		return nil, err
	}
	return &LocalEngine{
		master:  master,
		players: [2]Player{game.Blue: blue, game.Red: red},
		seed:    seed,
		first:   setup.First,
	}, nil
}

// Run plays the match to the end and returns its records.
func (e *LocalEngine) Run() (metrics.MatchRecord, []metrics.MoveRecord, error) {
	id := uuid.New()
	start := time.Now()
	log.Info().Msgf("match %s: %s (blue) vs %s (red), %s starts",
		id, e.players[game.Blue].Name, e.players[game.Red].Name, e.first)

	var moves []metrics.MoveRecord
	for commands := 0; commands < MaxCommands; commands++ {
		switch e.master.Status() {
		case game.StatusGameOver:
			return e.matchRecord(id, start), moves, nil

		case game.StatusResolveBattle:
			resolve, events, err := e.master.RollBattle()
			if err != nil {
				return metrics.MatchRecord{}, nil, err
			}
			e.logEvents(events)
			if err := e.broadcast(func(a agent.Agent) error { return a.ResolveBattle(resolve) }); err != nil {
				return metrics.MatchRecord{}, nil, err
			}

		default:
			mover := e.master.Turn()
			seat := e.players[mover]
			moveStart := time.Now()
			action, search := seat.Agent.ChooseAction()
			events, err := e.master.Submit(action)
			if err != nil {
				return metrics.MatchRecord{}, nil, fmt.Errorf("agent %s: %w", seat.Name, err)
			}
			e.logEvents(events)
			moves = append(moves, metrics.MoveRecord{
				Match:    id,
				Step:     len(moves) + 1,
				Player:   mover,
				Action:   action.String(),
				Duration: time.Since(moveStart),
				Search:   search,
			})
			if err := e.broadcastAction(action); err != nil {
				return metrics.MatchRecord{}, nil, err
			}
		}
	}
	return metrics.MatchRecord{}, nil, fmt.Errorf("match not decided after %d commands", MaxCommands)
}

func (e *LocalEngine) matchRecord(id uuid.UUID, start time.Time) metrics.MatchRecord {
	blueScore, redScore := e.master.Scores()
	winner := "draw"
	if p, ok := e.master.Winner(); ok {
		winner = e.players[p].Name
	}
	if winner == "draw" {
		log.Info().Msgf("match %s: draw %d-%d after %d turns", id, blueScore, redScore, e.master.TurnCount())
	} else {
		log.Info().Msgf("match %s: %s wins %d-%d after %d turns", id, winner, blueScore, redScore, e.master.TurnCount())
	}
	return metrics.MatchRecord{
		ID:        id,
		Blue:      e.players[game.Blue].Name,
		Red:       e.players[game.Red].Name,
		First:     e.first,
		Winner:    winner,
		BlueScore: blueScore,
		RedScore:  redScore,
		Turns:     e.master.TurnCount(),
		Seed:      e.seed,
		StartTime: start,
		Duration:  time.Since(start),
	}
}

func (e *LocalEngine) broadcastAction(action game.Action) error {
	switch a := action.(type) {
	case game.PlaceCard:
		return e.broadcast(func(ag agent.Agent) error { return ag.PlaceCard(a) })
	case game.PickBattle:
		return e.broadcast(func(ag agent.Agent) error { return ag.PickBattle(a) })
	default:
		return fmt.Errorf("unknown action %v", action)
	}
}

// broadcast mirrors a command into both replicas. An error from either
// replica is fatal for the match.
func (e *LocalEngine) broadcast(apply func(agent.Agent) error) error {
	for p, seat := range e.players {
		if err := apply(seat.Agent); err != nil {
			return fmt.Errorf("%v replica: %w", game.Player(p), err)
		}
	}
	return nil
}

func (e *LocalEngine) logEvents(events []game.Event) {
	for _, event := range events {
		log.Debug().Msgf("%v", event)
	}
}
