package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// NoWinner is the value of GameState.Won while the game is undecided.
const NoWinner = -1

var (
	ErrGameOver = errors.New("game is over")
	ErrPlacing  = errors.New("players are still being placed")
)

type Option func(gs *GameState)

// WithElimination removes an immobilized player from the board instead of
// ending the game, as long as more than two players are left.
func WithElimination() Option {
	return func(gs *GameState) {
		gs.elimination = true
	}
}

// GameState is the authoritative state of a game, owned by the driver. Play
// is its only writer once every player has been placed.
type GameState struct {
	Board         Board
	Positions     []Position // Eliminated until placed, and after elimination
	CurrentPlayer int
	Phase         ActionType
	Placed        int    // Number of players placed so far
	LastAction    Action // The last action played
	Plies         int    // Number of actions played
	Won           int    // Index of the winner, NoWinner if undecided

	elimination bool
}

// NewGameState creates an empty board waiting for numPlayers placements.
func NewGameState(numPlayers int, options ...Option) *GameState {
	if numPlayers < 2 {
		panic("need at least two players")
	}
	gs := &GameState{
		Positions: make([]Position, numPlayers),
		Phase:     MoveAction,
		Won:       NoWinner,
	}
	for i := range gs.Positions {
		gs.Positions[i] = Eliminated
	}
	for _, option := range options {
		option(gs)
	}
	return gs
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	c := *gs
	c.Positions = slices.Clone(gs.Positions)
	return &c
}

func (gs *GameState) IsPlacing() bool {
	return gs.Placed < len(gs.Positions)
}

// Place puts the next player to place on (row, col).
func (gs *GameState) Place(player, row, col int) error {
	if !gs.IsPlacing() {
		return fmt.Errorf("all %d players are already placed", len(gs.Positions))
	}
	if player != gs.Placed {
		return fmt.Errorf("player %d must be placed before player %d", gs.Placed, player)
	}
	if !gs.Board.InBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) is off the board", ErrInvalidAction, row, col)
	}
	if gs.Board.CellAt(row, col).IsOccupied() {
		return fmt.Errorf("%w: cell (%d,%d) is occupied", ErrInvalidAction, row, col)
	}

	pos := gs.Board.PositionAt(row, col)
	gs.Board = gs.Board.Place(pos, player)
	gs.Positions[player] = pos
	gs.Placed++

	if !gs.IsPlacing() {
		gs.CurrentPlayer = 0
		gs.Phase = MoveAction
		gs.CheckGameOver()
	}
	return nil
}

// Snapshot returns a copy of the state for the agent to act.
func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:     gs.Board,
		Positions: slices.Clone(gs.Positions),
		Agent:     gs.CurrentPlayer,
		Phase:     gs.Phase,
	}
}

// LegalActions is the action space of the current player.
func (gs *GameState) LegalActions() []Action {
	if gs.IsPlacing() || gs.IsOver() {
		return nil
	}
	return LegalActions(gs.Board, gs.Positions[gs.CurrentPlayer], gs.Phase)
}

// Play applies action for the current player. A rejected action leaves the
// state untouched.
func (gs *GameState) Play(action Action) error {
	if gs.IsOver() {
		return ErrGameOver
	}
	if gs.IsPlacing() {
		return ErrPlacing
	}
	if action.Type != gs.Phase {
		return fmt.Errorf("%w: player %d must %s, got %s", ErrInvalidAction, gs.CurrentPlayer, gs.Phase, action)
	}

	board, positions, err := Apply(gs.Board, gs.Positions, action, gs.CurrentPlayer)
	if err != nil {
		return err
	}

	gs.Board = board
	gs.Positions = positions
	gs.LastAction = action
	gs.Plies++
	gs.CurrentPlayer, gs.Phase = NextTurn(gs.Positions, gs.CurrentPlayer, gs.Phase)
	gs.CheckGameOver()
	return nil
}

// Forfeit makes player lose, e.g. when its agent has no action to offer.
func (gs *GameState) Forfeit(player int) {
	if gs.IsOver() || gs.Positions[player].IsEliminated() {
		return
	}
	gs.eliminate(player)
	gs.CheckGameOver()
}

// CheckGameOver settles the winner: a player standing on the winning height
// wins; the current player loses when it cannot act in its phase.
func (gs *GameState) CheckGameOver() bool {
	for gs.Won == NoWinner {
		for player, pos := range gs.Positions {
			if !pos.IsEliminated() && IsTerminalWin(gs.Board, gs.Positions, player) {
				gs.Won = player
				return true
			}
		}
		if !IsTerminalLossByImmobilization(gs.Board, gs.Positions, gs.CurrentPlayer, gs.Phase) {
			return false
		}
		gs.eliminate(gs.CurrentPlayer)
	}
	return true
}

func (gs *GameState) eliminate(player int) {
	if !gs.elimination || gs.LivePlayers() <= 2 {
		gs.Won, _ = NextTurn(gs.Positions, player, BuildAction)
		return
	}
	gs.Board = gs.Board.Remove(gs.Positions[player])
	gs.Positions[player] = Eliminated
	if gs.CurrentPlayer == player {
		gs.CurrentPlayer, gs.Phase = NextTurn(gs.Positions, player, BuildAction)
	}
}

func (gs *GameState) LivePlayers() int {
	live := 0
	for _, pos := range gs.Positions {
		if !pos.IsEliminated() {
			live++
		}
	}
	return live
}

func (gs *GameState) IsOver() bool {
	return gs.Won != NoWinner
}

// Winner returns the index of the winner once the game is over.
func (gs *GameState) Winner() (int, bool) {
	return gs.Won, gs.Won != NoWinner
}
