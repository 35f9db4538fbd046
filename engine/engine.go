package engine

import "github.com/AdrienDelgado/SantoriniAI/experiments/metrics"

type Engine interface {
	// Run plays a game till there's a winner or a max number of plies is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
