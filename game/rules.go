package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidAction is returned when a proposed move or build breaks the rules.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNoLegalAction is returned when an agent is asked to act with an empty action space.
	ErrNoLegalAction = errors.New("no legal action")
)

// Target applies one compass step to pos. The height of the result comes from
// the board when in bounds and is left as pos.Height otherwise.
func Target(board Board, pos Position, d Direction) Position {
	dRow, dCol := d.Offset()
	target := Position{Row: pos.Row + dRow, Col: pos.Col + dCol, Height: pos.Height}
	if board.InBounds(target.Row, target.Col) {
		target.Height = board.HeightAt(target.Row, target.Col)
	}
	return target
}

// Neighbors returns the 8 candidate cells around pos in canonical direction
// order. Out-of-bounds candidates are kept and must be filtered by the caller.
func Neighbors(board Board, pos Position) [8]Position {
	var neighbors [8]Position
	for i, d := range Directions {
		neighbors[i] = Target(board, pos, d)
	}
	return neighbors
}

// IsLegalMove reports whether a player standing on from may step onto to.
func IsLegalMove(board Board, from, to Position) bool {
	if !board.InBounds(to.Row, to.Col) || Chebyshev(from, to) != 1 {
		return false
	}
	cell := board.CellAt(to.Row, to.Col)
	return !cell.IsOccupied() && cell.Height <= from.Height+1 && cell.Height < MaxHeight
}

// IsLegalBuild reports whether a player standing on playerPos may build on at.
func IsLegalBuild(board Board, playerPos, at Position) bool {
	if !board.InBounds(at.Row, at.Col) || Chebyshev(playerPos, at) != 1 {
		return false
	}
	cell := board.CellAt(at.Row, at.Col)
	return !cell.IsOccupied() && cell.Height < MaxHeight
}

// LegalMoves lists the legal move actions from pos in canonical order.
func LegalMoves(board Board, pos Position) []Action {
	if pos.IsEliminated() {
		return nil
	}
	actions := make([]Action, 0, len(Directions))
	for _, d := range Directions {
		if IsLegalMove(board, pos, Target(board, pos, d)) {
			actions = append(actions, Move(d))
		}
	}
	return actions
}

// LegalBuilds lists the legal build actions from pos in canonical order.
func LegalBuilds(board Board, pos Position) []Action {
	if pos.IsEliminated() {
		return nil
	}
	actions := make([]Action, 0, len(Directions))
	for _, d := range Directions {
		if IsLegalBuild(board, pos, Target(board, pos, d)) {
			actions = append(actions, Build(d))
		}
	}
	return actions
}

// LegalActions returns the action space of a player at pos for the given phase.
func LegalActions(board Board, pos Position, phase ActionType) []Action {
	if phase == MoveAction {
		return LegalMoves(board, pos)
	}
	return LegalBuilds(board, pos)
}

// IsLegal reports whether action is legal for player in the given position set.
func IsLegal(board Board, positions []Position, action Action, player int) bool {
	pos := positions[player]
	if pos.IsEliminated() {
		return false
	}
	target := Target(board, pos, action.Direction)
	if action.Type == MoveAction {
		return IsLegalMove(board, pos, target)
	}
	return IsLegalBuild(board, pos, target)
}

// Transition returns the board and positions after player performs action.
// Legality is the caller's responsibility. Inputs are never modified.
func Transition(board Board, positions []Position, action Action, player int) (Board, []Position) {
	next := slices.Clone(positions)
	pos := positions[player]
	target := Target(board, pos, action.Direction)

	switch action.Type {
	case MoveAction:
		board = board.ApplyMove(pos, target, player)
		next[player] = board.PositionAt(target.Row, target.Col)
	case BuildAction:
		board = board.ApplyBuild(target)
		// A build never lands under a player, but keep heights derived from the board.
		for i, p := range next {
			if !p.IsEliminated() && p.Row == target.Row && p.Col == target.Col {
				next[i].Height = board.HeightAt(p.Row, p.Col)
			}
		}
	default:
		panic(fmt.Sprintf("unknown action type %d", int(action.Type)))
	}
	return board, next
}

// Apply validates action before transitioning. Rejected actions leave nothing
// changed and return ErrInvalidAction.
func Apply(board Board, positions []Position, action Action, player int) (Board, []Position, error) {
	if player < 0 || player >= len(positions) {
		return board, positions, fmt.Errorf("%w: unknown player %d", ErrInvalidAction, player)
	}
	if !IsLegal(board, positions, action, player) {
		return board, positions, fmt.Errorf("%w: %s by player %d from %s", ErrInvalidAction, action, player, positions[player])
	}
	nextBoard, nextPositions := Transition(board, positions, action, player)
	return nextBoard, nextPositions, nil
}

// IsTerminalWin reports whether player stands on the winning height.
func IsTerminalWin(board Board, positions []Position, player int) bool {
	pos := positions[player]
	return !pos.IsEliminated() && pos.Height == WinHeight
}

// IsTerminalLossByImmobilization reports whether player cannot act in phase:
// no legal move during a move phase, no legal build during a build phase.
func IsTerminalLossByImmobilization(board Board, positions []Position, player int, phase ActionType) bool {
	return len(LegalActions(board, positions[player], phase)) == 0
}

// NextTurn returns who acts next and in which phase. A move is followed by a
// build of the same agent; a build hands over to the next live agent.
func NextTurn(positions []Position, agent int, phase ActionType) (int, ActionType) {
	if phase == MoveAction {
		return agent, BuildAction
	}
	next := agent
	for range positions {
		next = (next + 1) % len(positions)
		if !positions[next].IsEliminated() {
			break
		}
	}
	return next, MoveAction
}
