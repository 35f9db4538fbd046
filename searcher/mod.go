package searcher

import (
	"errors"

	"github.com/AdrienDelgado/SantoriniAI/experiments/metrics"
	"github.com/AdrienDelgado/SantoriniAI/game"
)

// ErrConfiguration is returned when a searcher is built with invalid parameters.
var ErrConfiguration = errors.New("invalid configuration")

// Result is the outcome of a search from the searching player's perspective.
type Result struct {
	Action game.Action
	Value  float64 // +Inf for a forced win, -Inf for a forced loss
	Found  bool    // False when no action was selected (terminal or empty action space)
	Metric metrics.SearchMetric
}
