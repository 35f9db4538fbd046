package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AdrienDelgado/SantoriniAI/config"
	"github.com/AdrienDelgado/SantoriniAI/engine"
	"github.com/AdrienDelgado/SantoriniAI/experiments"
	"github.com/AdrienDelgado/SantoriniAI/searcher/agent"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML game configuration (defaults to two search agents)")
	mode := flag.String("mode", "play", "One of play, arena or speedup")
	games := flag.Int("games", 0, "Number of games in arena mode (overrides the configuration)")
	parallelism := flag.Int("parallelism", 0, "Games played at once in arena mode (0 means one per CPU)")
	goroutines := flag.String("goroutines", "1,2,4,8", "Comma separated root worker counts in speedup mode")
	out := flag.String("out", "", "Directory to store experiment records in")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}

	switch *mode {
	case "play":
		err = play(cfg)
	case "arena":
		_, err = experiments.RunArena("arena", cfg, *parallelism, *out)
	case "speedup":
		var counts []int
		counts, err = parseCounts(*goroutines)
		if err == nil {
			_, err = experiments.RunSpeedupExperiment(cfg, counts, *out)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

// play runs a single game, reading human actions from stdin.
func play(cfg config.Config) error {
	agents, err := cfg.Agents(agent.NewReaderSource(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	options := []engine.Option{engine.WithMaxPlies(cfg.MaxPlies), engine.WithNames(cfg.Names())}
	if cfg.Elimination {
		options = append(options, engine.WithElimination())
	}
	e, err := engine.LocalEngine(agents, cfg.Starts(), options...)
	if err != nil {
		return err
	}

	gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	fmt.Println(e.State.Board)
	if winner, ok := e.State.Winner(); ok {
		fmt.Printf("Winner: %s after %d plies\n", cfg.Players[winner].Name, gameMetric.TotalMoves)
	} else {
		fmt.Printf("No winner after %d plies\n", gameMetric.TotalMoves)
	}
	return nil
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid goroutine count %q", field)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
