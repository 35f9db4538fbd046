package searcher

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/AdrienDelgado/SantoriniAI/experiments/metrics"
	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/utils"
)

type Option func(m *Minimax)

// Minimax picks actions for one player with a depth-bounded alpha-beta search.
// A Minimax is not safe for concurrent use.
type Minimax struct {
	player     int
	depth      int
	goroutines int
	timeout    time.Duration
	seed       uint64
	rng        *rand.Rand
	evaluate   game.Evaluate
	metrics    metrics.Collector
	last       metrics.SearchMetric
}

// WithSeed pins the shuffle of candidate actions.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.seed = seed
	}
}

// WithGoroutines searches the root's children in parallel, each with its own
// bounds and random source.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		m.goroutines = goroutines
	}
}

// WithTimeout scores nodes heuristically once the deadline has passed. The
// root is always expanded.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Minimax) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMinimax returns a searcher playing for player with a budget of depth plies.
func NewMinimax(player, depth int, options ...Option) (*Minimax, error) {
	m := &Minimax{ // Default values
		player:     player,
		depth:      depth,
		goroutines: 1,
		seed:       frand.Uint64n(math.MaxUint64),
		evaluate:   game.EvaluatePressure,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if player < 0 {
		return nil, fmt.Errorf("%w: negative player index %d", ErrConfiguration, player)
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: search depth must be at least 1, got %d", ErrConfiguration, depth)
	}
	if m.goroutines < 1 {
		return nil, fmt.Errorf("%w: goroutines must be at least 1, got %d", ErrConfiguration, m.goroutines)
	}

	m.rng = rand.New(rand.NewSource(m.seed))
	return m, nil
}

func (m *Minimax) Player() int {
	return m.player
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) Seed() uint64 {
	return m.seed
}

// LastMetric returns the metrics of the latest search. They are zero unless
// WithMetrics was given.
func (m *Minimax) LastMetric() metrics.SearchMetric {
	return m.last
}

// ChooseAction returns an action from the snapshot's legal action space, or
// ErrNoLegalAction when that space is empty.
func (m *Minimax) ChooseAction(snapshot game.Snapshot) (game.Action, error) {
	result := m.search(snapshot, false)
	if !result.Found {
		return game.Action{}, fmt.Errorf("%w: player %d cannot %s", game.ErrNoLegalAction, snapshot.Agent, snapshot.Phase)
	}
	return result.Action, nil
}

// Search evaluates the snapshot. Unlike ChooseAction, a root that is already
// decided is scored without being expanded.
func (m *Minimax) Search(snapshot game.Snapshot) Result {
	return m.search(snapshot, true)
}

func (m *Minimax) search(snapshot game.Snapshot, cutRoot bool) Result {
	start := time.Now()
	m.metrics.Start(m.goroutines, m.depth)
	root := snapshot.Clone()
	s := m.newSearch(m.rng, start)

	var result Result
	decided := false
	if cutRoot {
		result.Value, decided = s.cutoff(root, m.depth)
	}
	switch {
	case decided:
	case m.goroutines > 1:
		result = m.parallelRoot(root, start)
	default:
		result.Value, result.Action, result.Found = s.expand(root, math.Inf(-1), math.Inf(1), m.depth)
	}

	result.Metric = m.metrics.Complete(result.Value)
	m.last = result.Metric

	log.Debug().
		Int("player", m.player).
		Int("agent", snapshot.Agent).
		Stringer("phase", snapshot.Phase).
		Bool("found", result.Found).
		Stringer("action", result.Action).
		Float64("value", result.Value).
		Int("nodes", result.Metric.Nodes).
		Int("prunes", result.Metric.Prunes).
		Dur("took", time.Since(start)).
		Msg("search-complete")

	return result
}

// parallelRoot searches each root child on its own goroutine with a full
// window. The root value matches the sequential search; ties may resolve to a
// different action.
func (m *Minimax) parallelRoot(root game.Snapshot, start time.Time) Result {
	actions := root.LegalActions()
	if len(actions) == 0 {
		m.metrics.AddLeaf()
		return Result{Value: m.evaluate(root.Board, root.Positions, m.player)}
	}
	m.newSearch(m.rng, start).shuffle(actions)
	m.metrics.AddNode()

	children := make([]float64, len(actions))
	g := errgroup.Group{}
	g.SetLimit(m.goroutines)
	for i, action := range actions {
		i := i
		s := m.newSearch(rand.New(rand.NewSource(m.rng.Uint64())), start)
		child := root.Play(action)
		g.Go(func() error {
			children[i], _, _ = s.alphabeta(child, math.Inf(-1), math.Inf(1), m.depth-1)
			return nil
		})
	}
	_ = g.Wait()

	maximizing := root.Agent == m.player
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	values := make([]float64, len(children))
	for i, child := range children {
		if maximizing {
			value = max(value, child)
		} else {
			value = min(value, child)
		}
		values[i] = value
	}

	return Result{
		Action: actions[utils.FindIndex(values, value)],
		Value:  value,
		Found:  true,
	}
}
