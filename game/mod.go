package game

import "golang.org/x/exp/slices"

// Snapshot is a read-only copy of a game handed to agents. Agents work on
// copies derived from it and never write back into the driver's state.
type Snapshot struct {
	Board     Board
	Positions []Position // One per player, Eliminated for removed players
	Agent     int        // Index of the agent to act
	Phase     ActionType // Pending ply of the agent's turn
}

// Clone returns a snapshot that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	s.Positions = slices.Clone(s.Positions)
	return s
}

// LegalActions is the action space of the agent to act.
func (s Snapshot) LegalActions() []Action {
	return LegalActions(s.Board, s.Positions[s.Agent], s.Phase)
}

// Play returns the snapshot after the agent to act performs action. Legality
// is not checked.
func (s Snapshot) Play(action Action) Snapshot {
	board, positions := Transition(s.Board, s.Positions, action, s.Agent)
	agent, phase := NextTurn(positions, s.Agent, s.Phase)
	return Snapshot{Board: board, Positions: positions, Agent: agent, Phase: phase}
}
