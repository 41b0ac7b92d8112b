package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tetra/experiments"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `
games: 25
seed: 7
out: records
log_level: debug
battle:
  system: dice
  sides: 6
agents:
  - name: deep
    kind: expectiminimax
    depth: 4
    cutoff: 0.05
    eval_weight: 0.5
  - name: baseline
    kind: random
`

func TestLoad(t *testing.T) {
	t.Run("a valid file loads", func(t *testing.T) {
		c, err := Load(writeConfig(t, validConfig))

		require.NoError(t, err)
		require.Equal(t, 25, c.Games)
		require.Equal(t, uint64(7), c.Seed)
		require.Equal(t, "records", c.Out)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, Battle{System: "dice", Sides: 6}, c.Battle)
		require.Equal(t, []Agent{
			{Name: "deep", Kind: "expectiminimax", Depth: 4, Cutoff: 0.05, EvalWeight: 0.5},
			{Name: "baseline", Kind: "random"},
		}, c.Agents)
	})

	t.Run("a missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "failed to read config")
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		_, err := Load(writeConfig(t, "games: [not a number"))
		require.ErrorContains(t, err, "failed to parse config")
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c, err := Load(writeConfig(t, validConfig))
		require.NoError(t, err)
		return c
	}

	t.Run("default passes", func(t *testing.T) {
		require.NoError(t, Default().Validate())
	})

	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"zero games": {
			mutate: func(c *Config) { c.Games = 0 },
			want:   "games must be at least 1, got 0",
		},
		"one agent": {
			mutate: func(c *Config) { c.Agents = c.Agents[:1] },
			want:   "need at least 2 agents, got 1",
		},
		"unknown battle system": {
			mutate: func(c *Config) { c.Battle.System = "coin" },
			want:   `unknown battle system "coin"`,
		},
		"bad dice sides": {
			mutate: func(c *Config) { c.Battle.Sides = 1 },
			want:   "dice battle system needs between 2 and 16 sides, got 1",
		},
		"nameless agent": {
			mutate: func(c *Config) { c.Agents[0].Name = "" },
			want:   "every agent needs a name",
		},
		"duplicate agent name": {
			mutate: func(c *Config) { c.Agents[1].Name = c.Agents[0].Name },
			want:   `duplicate agent name "deep"`,
		},
		"unknown agent kind": {
			mutate: func(c *Config) { c.Agents[1].Kind = "mcts" },
			want:   `agent baseline: unknown kind "mcts"`,
		},
		"zero depth": {
			mutate: func(c *Config) { c.Agents[0].Depth = 0 },
			want:   "agent deep: depth must be at least 1, got 0",
		},
		"cutoff too high": {
			mutate: func(c *Config) { c.Agents[0].Cutoff = 0.5 },
			want:   "agent deep: cutoff must be within [0, 0.5), got 0.5",
		},
		"negative cutoff": {
			mutate: func(c *Config) { c.Agents[0].Cutoff = -0.1 },
			want:   "agent deep: cutoff must be within [0, 0.5), got -0.1",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			require.EqualError(t, c.Validate(), tc.want)
		})
	}
}

func TestBattleSystem(t *testing.T) {
	build := func(t *testing.T, battle Battle) string {
		c := Config{Battle: battle}
		system, err := c.BattleSystem()
		require.NoError(t, err)
		return system.String()
	}

	require.Equal(t, "original", build(t, Battle{}))
	require.Equal(t, "original", build(t, Battle{System: "original"}))
	require.Equal(t, "original-approx", build(t, Battle{System: "original-approx"}))
	require.Equal(t, "dice(8)", build(t, Battle{System: "dice", Sides: 8}))
	require.Equal(t, "deterministic", build(t, Battle{System: "deterministic"}))
}

func TestAgentSpecs(t *testing.T) {
	c, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	specs := c.AgentSpecs()

	require.Equal(t, []experiments.AgentSpec{
		{Name: "deep", Kind: experiments.KindExpectiminimax, Depth: 4, Cutoff: 0.05, EvalWeight: 0.5},
		{Name: "baseline", Kind: experiments.KindRandom},
	}, specs)
}
