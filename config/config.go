// Package config loads arena configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tetra/experiments"
	"tetra/game"
)

// Battle selects the battle system by name: "original", "original-approx",
// "dice" (with Sides set) or "deterministic".
type Battle struct {
	System string `yaml:"system"`
	Sides  int    `yaml:"sides"`
}

// Agent describes one contestant.
type Agent struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Depth      int     `yaml:"depth"`
	Cutoff     float64 `yaml:"cutoff"`
	EvalWeight float64 `yaml:"eval_weight"`
}

// Config is the root of an arena configuration.
type Config struct {
	Games    int     `yaml:"games"`
	Seed     uint64  `yaml:"seed"`
	Out      string  `yaml:"out"`
	LogLevel string  `yaml:"log_level"`
	Battle   Battle  `yaml:"battle"`
	Agents   []Agent `yaml:"agents"`
}

// Default returns the configuration used when no file is given: a short
// original-rules arena of a searching agent against the random baseline.
func Default() Config {
	return Config{
		Games:    10,
		Seed:     1,
		Out:      "out",
		LogLevel: "info",
		Battle:   Battle{System: "original"},
		Agents: []Agent{
			{Name: "expectiminimax-3", Kind: experiments.KindExpectiminimax, Depth: 3, Cutoff: 0.05},
			{Name: "random", Kind: experiments.KindRandom},
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", c.Games)
	}
	if len(c.Agents) < 2 {
		return fmt.Errorf("need at least 2 agents, got %d", len(c.Agents))
	}
	if _, err := c.BattleSystem(); err != nil {
		return err
	}
	names := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.Name == "" {
			return errors.New("every agent needs a name")
		}
		if names[a.Name] {
			return fmt.Errorf("duplicate agent name %q", a.Name)
		}
		names[a.Name] = true
		switch a.Kind {
		case experiments.KindExpectiminimax:
			if a.Depth < 1 {
				return fmt.Errorf("agent %s: depth must be at least 1, got %d", a.Name, a.Depth)
			}
			if a.Cutoff < 0 || a.Cutoff >= 0.5 {
				return fmt.Errorf("agent %s: cutoff must be within [0, 0.5), got %g", a.Name, a.Cutoff)
			}
		case experiments.KindRandom:
		default:
			return fmt.Errorf("agent %s: unknown kind %q", a.Name, a.Kind)
		}
	}
	return nil
}

// BattleSystem builds the configured battle system.
func (c Config) BattleSystem() (game.BattleSystem, error) {
	switch c.Battle.System {
	case "", "original":
		return game.NewOriginal(), nil
	case "original-approx":
		return game.NewOriginalApprox(), nil
	case "dice":
		return game.NewDice(c.Battle.Sides)
	case "deterministic":
		return game.NewDeterministic(), nil
	default:
		return game.BattleSystem{}, fmt.Errorf("unknown battle system %q", c.Battle.System)
	}
}

// AgentSpecs converts the configured agents for the arena.
func (c Config) AgentSpecs() []experiments.AgentSpec {
	specs := make([]experiments.AgentSpec, 0, len(c.Agents))
	for _, a := range c.Agents {
		specs = append(specs, experiments.AgentSpec{
			Name:       a.Name,
			Kind:       a.Kind,
			Depth:      a.Depth,
			Cutoff:     a.Cutoff,
			EvalWeight: a.EvalWeight,
		})
	}
	return specs
}
