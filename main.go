package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tetra/config"
	"tetra/experiments"
	"tetra/experiments/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML arena configuration")
	games := flag.Int("games", 0, "Override the number of games per pairing")
	seed := flag.Uint64("seed", 0, "Override the arena seed")
	out := flag.String("out", "", "Override the output directory for records")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *out != "" {
		cfg.Out = *out
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("unknown log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	system, err := cfg.BattleSystem()
	if err != nil {
		log.Fatal().Err(err).Msg("bad battle system")
	}

	arena := experiments.Arena{
		Games:  cfg.Games,
		Seed:   cfg.Seed,
		System: system,
		Agents: cfg.AgentSpecs(),
	}
	standings, matchRecords, moveRecords, err := arena.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
	for _, s := range standings {
		log.Info().Msgf("%s: %d wins, %d losses, %d draws", s.Name, s.Wins, s.Losses, s.Draws)
	}
	for _, s := range metrics.Summarize(matchRecords, moveRecords) {
		log.Info().Msgf("%s: %d moves, %v mean move time, %.0f mean expanded nodes",
			s.Name, s.Moves, s.MeanDuration.Round(time.Microsecond), s.MeanExpandedNodes)
	}

	writer, err := metrics.NewWriter(cfg.Out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create record writer")
	}
	if err := writer.WriteMatches(matchRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write match records")
	}
	if err := writer.WriteMoves(moveRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write move records")
	}
	log.Info().Msgf("wrote %d match and %d move records to %s", len(matchRecords), len(moveRecords), writer.Dir())
}
