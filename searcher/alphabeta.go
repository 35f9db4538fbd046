package searcher

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/utils"
)

// search holds the per-goroutine state of one alpha-beta run.
type search struct {
	*Minimax
	rng      *rand.Rand
	deadline time.Time
}

func (m *Minimax) newSearch(rng *rand.Rand, start time.Time) *search {
	s := &search{Minimax: m, rng: rng}
	if m.timeout > 0 {
		s.deadline = start.Add(m.timeout)
	}
	return s
}

// alphabeta returns the value of n and, when n was expanded, the first action
// in shuffled order reaching that value.
func (s *search) alphabeta(n game.Snapshot, alpha, beta float64, depth int) (float64, game.Action, bool) {
	if value, ok := s.cutoff(n, depth); ok {
		return value, game.Action{}, false
	}
	return s.expand(n, alpha, beta, depth)
}

// cutoff scores n without expanding it: decided games first, then the depth
// budget, then the deadline.
func (s *search) cutoff(n game.Snapshot, depth int) (float64, bool) {
	pos := n.Positions[n.Agent]

	// Reaching the top
	if pos.Height == game.WinHeight {
		s.metrics.AddTerminal()
		if n.Agent == s.player {
			return math.Inf(1), true
		}
		return math.Inf(-1), true
	}

	// Blocked, whatever the phase
	if len(game.LegalMoves(n.Board, pos)) == 0 {
		s.metrics.AddTerminal()
		if n.Agent == s.player {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	if depth <= 0 {
		s.metrics.AddLeaf()
		return s.evaluate(n.Board, n.Positions, s.player), true
	}

	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.metrics.AddTimeout()
		return s.evaluate(n.Board, n.Positions, s.player), true
	}

	return 0, false
}

// expand searches every legal action of n. The searching player maximizes on
// both plies of its turns; every other agent minimizes.
func (s *search) expand(n game.Snapshot, alpha, beta float64, depth int) (float64, game.Action, bool) {
	actions := n.LegalActions()
	if len(actions) == 0 {
		s.metrics.AddLeaf()
		return s.evaluate(n.Board, n.Positions, s.player), game.Action{}, false
	}
	s.shuffle(actions)
	s.metrics.AddNode()

	maximizing := n.Agent == s.player
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}

	// Running values, the first match of the final value picks the action
	values := make([]float64, 0, len(actions))
	for _, action := range actions {
		child, _, _ := s.alphabeta(n.Play(action), alpha, beta, depth-1)
		if maximizing {
			value = max(value, child)
			values = append(values, value)
			if value >= beta {
				s.metrics.AddPrune()
				break
			}
			alpha = max(alpha, value)
		} else {
			value = min(value, child)
			values = append(values, value)
			if value <= alpha {
				s.metrics.AddPrune()
				break
			}
			beta = min(beta, value)
		}
	}

	return value, actions[utils.FindIndex(values, value)], true
}

func (s *search) shuffle(actions []game.Action) {
	utils.Shuffle(s.rng, actions)
}
