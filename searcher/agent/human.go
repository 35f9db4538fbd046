package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/AdrienDelgado/SantoriniAI/game"
)

// ErrSourceClosed is returned once an action source has nothing left to give.
var ErrSourceClosed = errors.New("action source closed")

// ActionSource supplies the actions proposed by a human player.
type ActionSource interface {
	NextAction(snapshot game.Snapshot) (game.Action, error)
}

type humanAgent struct {
	player int
	source ActionSource
}

// NewHumanAgent returns an agent that asks source until a legal action comes.
func NewHumanAgent(player int, source ActionSource) Agent {
	return &humanAgent{player: player, source: source}
}

func (h *humanAgent) ChooseAction(snapshot game.Snapshot) (game.Action, error) {
	legal := snapshot.LegalActions()
	if len(legal) == 0 {
		return game.Action{}, fmt.Errorf("%w: player %d cannot %s", game.ErrNoLegalAction, snapshot.Agent, snapshot.Phase)
	}

	for {
		action, err := h.source.NextAction(snapshot)
		if errors.Is(err, game.ErrInvalidAction) {
			log.Warn().Err(err).Int("player", h.player).Msg("rejected input")
			continue
		}
		if err != nil {
			return game.Action{}, err
		}
		if !slices.Contains(legal, action) {
			log.Warn().Int("player", h.player).Stringer("action", action).Msgf("illegal action, expected one of %v", legal)
			continue
		}
		return action, nil
	}
}

// ChannelSource hands over actions pushed by the driver, e.g. from clicks.
type ChannelSource chan game.Action

func (c ChannelSource) NextAction(game.Snapshot) (game.Action, error) {
	action, ok := <-c
	if !ok {
		return game.Action{}, ErrSourceClosed
	}
	return action, nil
}

// ReaderSource reads one action per line, e.g. "move ul" or "b d".
type ReaderSource struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewReaderSource reads from r and writes a prompt to prompt when not nil.
func NewReaderSource(r io.Reader, prompt io.Writer) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r), prompt: prompt}
}

func (s *ReaderSource) NextAction(snapshot game.Snapshot) (game.Action, error) {
	if s.prompt != nil {
		fmt.Fprintf(s.prompt, "%splayer %d, %s> ", snapshot.Board, snapshot.Agent, snapshot.Phase)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return game.Action{}, fmt.Errorf("failed to read action: %w", err)
		}
		return game.Action{}, ErrSourceClosed
	}
	action, err := game.ParseAction(s.scanner.Text())
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %v", game.ErrInvalidAction, err)
	}
	return action, nil
}
