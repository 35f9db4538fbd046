package agent

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdrienDelgado/SantoriniAI/game"
)

func openingSnapshot() game.Snapshot {
	gs := game.NewGameState(2)
	_ = gs.Place(0, 1, 2)
	_ = gs.Place(1, 2, 2)
	return gs.Snapshot()
}

func TestParseKind(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		for s, expected := range map[string]Kind{"MiniMax": MiniMax, "minimax": MiniMax, " Human ": Human} {
			kind, err := ParseKind(s)
			require.NoError(t, err)
			require.Equal(t, expected, kind)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ParseKind("mcts")
		require.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestNew(t *testing.T) {
	t.Run("minimax agent", func(t *testing.T) {
		a, err := New(Config{Kind: MiniMax, Player: 0, Depth: 2, Seed: 5, Metrics: true}, nil)
		require.NoError(t, err)

		action, err := a.ChooseAction(openingSnapshot())
		require.NoError(t, err)
		require.Contains(t, openingSnapshot().LegalActions(), action)

		reporter, ok := a.(MetricsReporter)
		require.True(t, ok)
		require.Positive(t, reporter.LastMetric().Nodes)
	})

	t.Run("refuses to act for another player", func(t *testing.T) {
		a, err := New(Config{Kind: MiniMax, Player: 1, Depth: 2}, nil)
		require.NoError(t, err)

		_, err = a.ChooseAction(openingSnapshot())
		require.Error(t, err)
	})

	t.Run("invalid search parameters", func(t *testing.T) {
		_, err := New(Config{Kind: MiniMax, Depth: 0}, nil)
		require.ErrorIs(t, err, ErrConfiguration)

		_, err = New(Config{Kind: MiniMax, Depth: 2, Evaluation: "random"}, nil)
		require.ErrorIs(t, err, ErrConfiguration)

		_, err = New(Config{Kind: Kind(7), Depth: 2}, nil)
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("human agent needs a source", func(t *testing.T) {
		_, err := New(Config{Kind: Human}, nil)
		require.ErrorIs(t, err, ErrConfiguration)

		a, err := New(Config{Kind: Human}, make(ChannelSource))
		require.NoError(t, err)
		require.NotNil(t, a)
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("skips illegal actions", func(t *testing.T) {
		source := make(ChannelSource, 3)
		source <- game.Build(game.Up)  // Wrong phase
		source <- game.Move(game.Down) // Occupied
		source <- game.Move(game.Up)
		a := NewHumanAgent(0, source)

		action, err := a.ChooseAction(openingSnapshot())

		require.NoError(t, err)
		require.Equal(t, game.Move(game.Up), action)
	})

	t.Run("closed source", func(t *testing.T) {
		source := make(ChannelSource)
		close(source)
		a := NewHumanAgent(0, source)

		_, err := a.ChooseAction(openingSnapshot())

		require.ErrorIs(t, err, ErrSourceClosed)
	})

	t.Run("no legal action", func(t *testing.T) {
		snapshot := openingSnapshot()
		snapshot.Positions[0] = game.Eliminated
		a := NewHumanAgent(0, make(ChannelSource))

		_, err := a.ChooseAction(snapshot)

		require.ErrorIs(t, err, game.ErrNoLegalAction)
	})

	t.Run("reads actions line by line", func(t *testing.T) {
		var prompt bytes.Buffer
		source := NewReaderSource(strings.NewReader("jump\nmove d\nm ul\n"), &prompt)
		a := NewHumanAgent(0, source)

		action, err := a.ChooseAction(openingSnapshot())

		require.NoError(t, err)
		require.Equal(t, game.Move(game.UpLeft), action)
		require.Contains(t, prompt.String(), "player 0, move> ")

		_, err = source.NextAction(openingSnapshot())
		require.ErrorIs(t, err, ErrSourceClosed)
	})
}
