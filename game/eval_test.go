package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluations(t *testing.T) {
	var board Board
	board = raise(board, 2, 2, 1)
	board = raise(board, 0, 0, 2)
	board, positions := setup(board, [2]int{2, 2}, [2]int{0, 0})

	t.Run("pressure is height minus distance to the nearest opponent", func(t *testing.T) {
		require.Equal(t, -1.0, EvaluatePressure(board, positions, 0))
		require.Equal(t, 0.0, EvaluatePressure(board, positions, 1))
	})

	t.Run("height", func(t *testing.T) {
		require.Equal(t, 1.0, EvaluateHeight(board, positions, 0))
		require.Equal(t, 2.0, EvaluateHeight(board, positions, 1))
	})

	t.Run("height difference weighs own height twice", func(t *testing.T) {
		require.Equal(t, 0.0, EvaluateHeightDifference(board, positions, 0))
		require.Equal(t, 3.0, EvaluateHeightDifference(board, positions, 1))
	})

	t.Run("weights combine features linearly", func(t *testing.T) {
		w := Weights{Height: 1}
		require.Equal(t, 1.0, w.Evaluate(board, positions, 0))

		w = Weights{Centrality: 1}
		require.Equal(t, 0.0, w.Evaluate(board, positions, 0))
		require.Equal(t, -2.0, w.Evaluate(board, positions, 1))

		// 8 reachable cells around the center against 3 for the corner
		w = Weights{Mobility: 1}
		require.Equal(t, 5.0, w.Evaluate(board, positions, 0))
	})

	t.Run("climbing scores higher", func(t *testing.T) {
		for _, evaluate := range []Evaluate{EvaluatePressure, EvaluateHeight, EvaluateHeightDifference, EvaluateComposite} {
			low := evaluate(board, positions, 0)
			higher, higherPositions := Transition(board, positions, Build(Up), 0)
			higher, higherPositions = Transition(higher, higherPositions, Build(Up), 0)
			higher, higherPositions = Transition(higher, higherPositions, Move(Up), 0)
			require.Equal(t, 2, higherPositions[0].Height)
			require.Greater(t, evaluate(higher, higherPositions, 0), low)
		}
	})
}

func TestEvaluationByName(t *testing.T) {
	t.Run("resolves every listed name", func(t *testing.T) {
		for _, name := range EvaluationNames {
			evaluate, err := EvaluationByName(name)
			require.NoError(t, err, name)
			require.NotNil(t, evaluate)
		}
	})

	t.Run("defaults to pressure", func(t *testing.T) {
		evaluate, err := EvaluationByName("")
		require.NoError(t, err)
		board, positions := setup(Board{}, [2]int{0, 0}, [2]int{4, 4})
		require.Equal(t, EvaluatePressure(board, positions, 0), evaluate(board, positions, 0))
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := EvaluationByName("random")
		require.Error(t, err)
	})
}

func TestDistances(t *testing.T) {
	t.Run("nearest live opponent", func(t *testing.T) {
		positions := []Position{{Row: 2, Col: 2}, {Row: 0, Col: 0}, {Row: 3, Col: 2}}
		require.Equal(t, 1, DistanceToNearestOpponent(positions, 0))

		positions[2] = Eliminated
		require.Equal(t, 2, DistanceToNearestOpponent(positions, 0))
	})

	t.Run("zero without opponents", func(t *testing.T) {
		positions := []Position{{Row: 2, Col: 2}, Eliminated}
		require.Equal(t, 0, DistanceToNearestOpponent(positions, 0))
	})

	t.Run("center", func(t *testing.T) {
		require.Equal(t, 0, DistanceToCenter(Position{Row: 2, Col: 2}))
		require.Equal(t, 2, DistanceToCenter(Position{Row: 4, Col: 1}))
	})

	t.Run("positions around a corner", func(t *testing.T) {
		require.Len(t, PositionsAround(Board{}, Position{}), 3)
		require.Len(t, PositionsAround(Board{}, Position{Row: 2, Col: 2}), 8)
	})
}
