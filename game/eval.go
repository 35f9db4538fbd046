package game

import (
	"fmt"
	"math"
)

// Evaluate scores a position from player's perspective. Scores are only
// compared against each other within one search, so no normalization applies.
type Evaluate func(board Board, positions []Position, player int) float64

var center = Position{Row: Size / 2, Col: Size / 2}

// EvaluatePressure rewards height and closing in on the nearest opponent.
func EvaluatePressure(board Board, positions []Position, player int) float64 {
	return float64(positions[player].Height - DistanceToNearestOpponent(positions, player))
}

// EvaluateHeight only rewards the player's own height.
func EvaluateHeight(board Board, positions []Position, player int) float64 {
	return float64(positions[player].Height)
}

// EvaluateHeightDifference weighs own height twice as much as the height of
// the highest opponent.
func EvaluateHeightDifference(board Board, positions []Position, player int) float64 {
	highest := 0
	for i, pos := range positions {
		if i != player && !pos.IsEliminated() {
			highest = max(highest, pos.Height)
		}
	}
	return float64(2*positions[player].Height - highest)
}

// Weights combines positional features linearly.
type Weights struct {
	Height     float64 // Own height, maximized
	Pressure   float64 // Distance to the nearest opponent, minimized
	Centrality float64 // Distance to the center cell, minimized
	Mobility   float64 // Own reachable cells minus the opponents' best, maximized
}

var DefaultWeights = Weights{Height: 3, Pressure: 1, Centrality: 0.5, Mobility: 0.25}

func (w Weights) Evaluate(board Board, positions []Position, player int) float64 {
	own := positions[player]
	score := w.Height*float64(own.Height) -
		w.Pressure*float64(DistanceToNearestOpponent(positions, player)) -
		w.Centrality*float64(DistanceToCenter(own))

	if w.Mobility != 0 {
		mobility := len(ReachablePositions(board, own))
		opponents := 0
		for i, pos := range positions {
			if i != player && !pos.IsEliminated() {
				opponents = max(opponents, len(ReachablePositions(board, pos)))
			}
		}
		score += w.Mobility * float64(mobility-opponents)
	}
	return score
}

// EvaluateComposite is Weights.Evaluate with DefaultWeights.
func EvaluateComposite(board Board, positions []Position, player int) float64 {
	return DefaultWeights.Evaluate(board, positions, player)
}

// EvaluationNames lists the names accepted by EvaluationByName.
var EvaluationNames = []string{"composite", "height", "height-difference", "pressure"}

// EvaluationByName resolves a configured evaluation name.
func EvaluationByName(name string) (Evaluate, error) {
	switch name {
	case "composite":
		return EvaluateComposite, nil
	case "height":
		return EvaluateHeight, nil
	case "height-difference":
		return EvaluateHeightDifference, nil
	case "pressure", "":
		return EvaluatePressure, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q, expected one of %v", name, EvaluationNames)
	}
}

// DistanceBetween is the Chebyshev distance between two positions.
func DistanceBetween(a, b Position) int {
	return Chebyshev(a, b)
}

// DistanceToCenter is the Chebyshev distance to the center cell.
func DistanceToCenter(pos Position) int {
	return Chebyshev(pos, center)
}

// DistanceToNearestOpponent returns 0 when player has no live opponent.
func DistanceToNearestOpponent(positions []Position, player int) int {
	nearest := math.MaxInt
	for i, pos := range positions {
		if i != player && !pos.IsEliminated() {
			nearest = min(nearest, DistanceBetween(positions[player], pos))
		}
	}
	if nearest == math.MaxInt {
		return 0
	}
	return nearest
}

// PositionsAround lists the in-bounds cells around pos.
func PositionsAround(board Board, pos Position) []Position {
	around := make([]Position, 0, len(Directions))
	for _, n := range Neighbors(board, pos) {
		if board.InBounds(n.Row, n.Col) {
			around = append(around, n)
		}
	}
	return around
}

// ReachablePositions lists the cells a player on pos may legally move to.
func ReachablePositions(board Board, pos Position) []Position {
	if pos.IsEliminated() {
		return nil
	}
	reachable := make([]Position, 0, len(Directions))
	for _, n := range PositionsAround(board, pos) {
		if IsLegalMove(board, pos, n) {
			reachable = append(reachable, n)
		}
	}
	return reachable
}
