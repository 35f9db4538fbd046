package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/AdrienDelgado/SantoriniAI/config"
)

// RunSpeedupExperiment replays the configured match once per goroutine count,
// giving every player that many root workers, and reports the node
// throughput of each run.
func RunSpeedupExperiment(base config.Config, goroutines []int, outDir string) (map[int]Summary, error) {
	summaries := make(map[int]Summary, len(goroutines))

	log.Info().Ints("goroutines", goroutines).Msg("starting speedup experiment...")

	for _, n := range goroutines {
		cfg := base
		cfg.Metrics = true
		cfg.Players = make([]config.Player, len(base.Players))
		copy(cfg.Players, base.Players)
		for i := range cfg.Players {
			cfg.Players[i].Goroutines = n
		}
		if err := cfg.Validate(); err != nil {
			return summaries, err
		}

		// One game at a time so workers do not compete for CPUs
		summary, err := RunArena(fmt.Sprintf("speedup-g%d", n), cfg, 1, outDir)
		if err != nil {
			return summaries, err
		}
		summaries[n] = summary

		log.Info().
			Int("goroutines", n).
			Int("nodes", summary.Nodes).
			Dur("search_time", summary.SearchTime).
			Float64("nodes_per_second", summary.Throughput()).
			Msg("completed run")
	}

	log.Info().Msg("completed speedup experiment")
	return summaries, nil
}
