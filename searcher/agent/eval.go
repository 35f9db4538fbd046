package agent

import (
	"fmt"

	"github.com/AdrienDelgado/SantoriniAI/experiments/metrics"
	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/searcher"
)

// MetricsReporter is implemented by agents that measure their searches.
type MetricsReporter interface {
	LastMetric() metrics.SearchMetric
}

type minimaxAgent struct {
	minimax *searcher.Minimax
}

// NewMinimaxAgent returns an agent backed by an alpha-beta search.
func NewMinimaxAgent(minimax *searcher.Minimax) Agent {
	return minimaxAgent{minimax: minimax}
}

func newMinimaxAgent(config Config) (Agent, error) {
	evaluate, err := game.EvaluationByName(config.Evaluation)
	if err != nil {
		return nil, fmt.Errorf("%w: player %d: %v", ErrConfiguration, config.Player, err)
	}

	options := []searcher.Option{searcher.WithEvaluationFn(evaluate)}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Timeout > 0 {
		options = append(options, searcher.WithTimeout(config.Timeout))
	}
	if config.Metrics {
		options = append(options, searcher.WithMetrics())
	}

	minimax, err := searcher.NewMinimax(config.Player, config.Depth, options...)
	if err != nil {
		return nil, err
	}
	return NewMinimaxAgent(minimax), nil
}

func (a minimaxAgent) ChooseAction(snapshot game.Snapshot) (game.Action, error) {
	if snapshot.Agent != a.minimax.Player() {
		return game.Action{}, fmt.Errorf("agent of player %d asked to act for player %d", a.minimax.Player(), snapshot.Agent)
	}
	return a.minimax.ChooseAction(snapshot)
}

func (a minimaxAgent) LastMetric() metrics.SearchMetric {
	return a.minimax.LastMetric()
}
