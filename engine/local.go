package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AdrienDelgado/SantoriniAI/experiments/metrics"
	"github.com/AdrienDelgado/SantoriniAI/game"
	"github.com/AdrienDelgado/SantoriniAI/meta"
	"github.com/AdrienDelgado/SantoriniAI/searcher/agent"
)

var _ Engine = (*Local)(nil)

type Option func(e *Local)

func WithMaxPlies(maxPlies int) Option {
	return func(e *Local) {
		if maxPlies > 0 {
			e.maxPlies = maxPlies
		}
	}
}

func WithNames(names []string) Option {
	return func(e *Local) {
		e.names = names
	}
}

// WithElimination keeps games of more than two players going when one of
// them is immobilized.
func WithElimination() Option {
	return func(e *Local) {
		e.stateOptions = append(e.stateOptions, game.WithElimination())
	}
}

// Local drives a game between in-process agents. It owns the authoritative
// state; agents only ever see snapshots.
type Local struct {
	ID     uuid.UUID
	State  *game.GameState
	Agents []agent.Agent

	names        []string
	maxPlies     int
	stateOptions []game.Option
}

// LocalEngine places one player per agent on its starting cell.
func LocalEngine(agents []agent.Agent, starts []game.Position, options ...Option) (*Local, error) {
	if len(agents) < 2 {
		return nil, fmt.Errorf("need at least two agents, got %d", len(agents))
	}
	if len(agents) != len(starts) {
		return nil, fmt.Errorf("number of agents %d does not match number of starting cells %d", len(agents), len(starts))
	}

	e := &Local{
		ID:       uuid.New(),
		Agents:   agents,
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}

	e.State = game.NewGameState(len(agents), e.stateOptions...)
	for player, start := range starts {
		if err := e.State.Place(player, start.Row, start.Col); err != nil {
			return nil, fmt.Errorf("failed to place player %d: %w", player, err)
		}
	}
	return e, nil
}

func (e *Local) name(player int) string {
	if player >= 0 && player < len(e.names) {
		return e.names[player]
	}
	return fmt.Sprintf("player%d", player)
}

// Run executes the game loop until a winner is found or the ply cap is hit.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	logger := log.With().Str("game", e.ID.String()).Logger()
	gameMetric := metrics.GameMetric{
		ID:             e.ID.String(),
		StartingPlayer: e.State.CurrentPlayer,
		Winner:         game.NoWinner,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	logger.Info().Msgf("%s is starting", e.name(e.State.CurrentPlayer))

	for !e.State.IsOver() && e.State.Plies < e.maxPlies {
		player := e.State.CurrentPlayer
		phase := e.State.Phase
		start := time.Now()

		a := e.Agents[player]
		action, err := a.ChooseAction(e.State.Snapshot())
		if errors.Is(err, game.ErrNoLegalAction) {
			logger.Warn().Err(err).Msgf("%s has no legal action and forfeits", e.name(player))
			e.State.Forfeit(player)
			continue
		}
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s failed to choose an action: %w", e.name(player), err)
		}
		if err := e.State.Play(action); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s played an invalid action: %w", e.name(player), err)
		}

		moveMetric := metrics.MoveMetric{
			Step:   e.State.Plies,
			Player: player,
			Phase:  phase,
			Action: action,
		}
		if reporter, ok := a.(agent.MetricsReporter); ok {
			moveMetric.SearchMetric = reporter.LastMetric()
		}
		if moveMetric.Duration == 0 {
			moveMetric.Duration = time.Since(start)
		}
		moveMetrics = append(moveMetrics, moveMetric)

		logger.Debug().
			Int("ply", e.State.Plies).
			Str("player", e.name(player)).
			Stringer("action", action).
			Stringer("position", e.State.Positions[player]).
			Msg("played")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.State.Plies

	if winner, ok := e.State.Winner(); ok {
		gameMetric.Winner = winner
		logger.Info().Int("plies", e.State.Plies).Msgf("game over, winner: %s", e.name(winner))
	} else {
		logger.Info().Msgf("stopped after %d plies (no winner yet)", e.State.Plies)
	}
	logger.Debug().Msgf("final board:\n%s", e.State.Board)

	return gameMetric, moveMetrics, nil
}
