package experiments

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/AdrienDelgado/SantoriniAI/config"
	"github.com/AdrienDelgado/SantoriniAI/engine"
	"github.com/AdrienDelgado/SantoriniAI/experiments/metrics"
	"github.com/AdrienDelgado/SantoriniAI/game"
)

// Summary tallies the outcome of an arena.
type Summary struct {
	Games      int
	Wins       []int // Per player
	Unfinished int   // Games stopped by the ply cap
	Nodes      int
	SearchTime time.Duration
}

// Throughput is the number of expanded nodes per second of search.
func (s Summary) Throughput() float64 {
	if s.SearchTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.SearchTime.Seconds()
}

// RunArena plays cfg.Games games between the configured search agents, using
// up to parallelism games at once (0 means one per CPU). Records are written
// under outDir unless it is empty.
func RunArena(name string, cfg config.Config, parallelism int, outDir string) (Summary, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	summary := Summary{Games: cfg.Games, Wins: make([]int, len(cfg.Players))}
	gameRecords := make([]metrics.GameRecord, cfg.Games)
	moveRecords := make([][]metrics.MoveRecord, cfg.Games)

	log.Info().Int("games", cfg.Games).Int("parallelism", parallelism).Msgf("starting %s experiment...", name)

	var mu sync.Mutex
	g := errgroup.Group{}
	g.SetLimit(parallelism)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			gameMetric, moveMetrics, err := runGame(cfg)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			gameRecords[i] = metrics.GameRecord{Game: i + 1, GameMetric: gameMetric}
			for _, mm := range moveMetrics {
				moveRecords[i] = append(moveRecords[i], metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
			}

			mu.Lock()
			for _, mm := range moveMetrics {
				summary.Nodes += mm.Nodes
				summary.SearchTime += mm.Duration
			}
			if gameMetric.Winner == game.NoWinner {
				summary.Unfinished++
			} else {
				summary.Wins[gameMetric.Winner]++
			}
			mu.Unlock()

			log.Info().Msgf("completed game %d of %d with winner: %d", i+1, cfg.Games, gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	for player, wins := range summary.Wins {
		log.Info().Str("player", cfg.Players[player].Name).Int("wins", wins).Msg("result")
	}
	log.Info().Msgf("completed %s experiment", name)

	if outDir == "" {
		return summary, nil
	}
	return summary, writeRecords(name, outDir, cfg, gameRecords, moveRecords)
}

func runGame(cfg config.Config) (metrics.GameMetric, []metrics.MoveMetric, error) {
	// Search agents only, a human has no source here
	agents, err := cfg.Agents(nil)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	options := []engine.Option{engine.WithMaxPlies(cfg.MaxPlies), engine.WithNames(cfg.Names())}
	if cfg.Elimination {
		options = append(options, engine.WithElimination())
	}
	e, err := engine.LocalEngine(agents, cfg.Starts(), options...)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func writeRecords(name, outDir string, cfg config.Config, games []metrics.GameRecord, moves [][]metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	players := make([]metrics.PlayerRecord, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = metrics.PlayerRecord{
			Player:     i,
			Name:       p.Name,
			Agent:      p.Agent,
			Depth:      p.Depth,
			Evaluation: p.Evaluation,
			Goroutines: p.Goroutines,
			Timeout:    p.Timeout,
		}
	}
	if err := writer.WritePlayerRecords(players); err != nil {
		return fmt.Errorf("failed to store player configs: %w", err)
	}
	log.Info().Msg("stored player configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var all []metrics.MoveRecord
	for _, records := range moves {
		all = append(all, records...)
	}
	if err := writer.WriteMoveRecords(all); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}
