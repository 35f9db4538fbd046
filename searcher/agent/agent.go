package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/searcher"
)

// ErrConfiguration is returned for agents that cannot be built from their config.
var ErrConfiguration = searcher.ErrConfiguration

type Agent interface {
	// ChooseAction returns an action for the snapshot's agent and phase, or
	// game.ErrNoLegalAction when there is none.
	ChooseAction(snapshot game.Snapshot) (game.Action, error)
}

// Kind selects the agent variant.
type Kind int

const (
	MiniMax Kind = iota
	Human
)

func (k Kind) String() string {
	switch k {
	case MiniMax:
		return "MiniMax"
	case Human:
		return "Human"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the kind names case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimax":
		return MiniMax, nil
	case "human":
		return Human, nil
	default:
		return 0, fmt.Errorf("%w: unknown agent kind %q, expected MiniMax or Human", ErrConfiguration, s)
	}
}

// Config describes one agent. Search fields are ignored by human agents.
type Config struct {
	Kind       Kind
	Player     int
	Depth      int
	Evaluation string
	Seed       uint64 // 0 draws a random seed
	Goroutines int
	Timeout    time.Duration
	Metrics    bool
}

// New builds the agent described by config. Human agents read their actions
// from source.
func New(config Config, source ActionSource) (Agent, error) {
	switch config.Kind {
	case MiniMax:
		return newMinimaxAgent(config)
	case Human:
		if source == nil {
			return nil, fmt.Errorf("%w: human player %d has no action source", ErrConfiguration, config.Player)
		}
		return NewHumanAgent(config.Player, source), nil
	default:
		return nil, fmt.Errorf("%w: unknown agent kind %s", ErrConfiguration, config.Kind)
	}
}
