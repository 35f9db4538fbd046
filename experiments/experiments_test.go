package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdrienDelgado/SantoriniAI/config"
	"github.com/AdrienDelgado/SantoriniAI/searcher/agent"
)

func quickConfig(games int) config.Config {
	c := config.Default()
	c.Games = games
	c.MaxPlies = 60
	c.Metrics = true
	for i := range c.Players {
		c.Players[i].Depth = 1
	}
	return c
}

func TestRunArena(t *testing.T) {
	t.Run("plays every game and stores records", func(t *testing.T) {
		out := t.TempDir()

		summary, err := RunArena("arena", quickConfig(3), 2, out)

		require.NoError(t, err)
		require.Equal(t, 3, summary.Games)
		require.Equal(t, 3, summary.Wins[0]+summary.Wins[1]+summary.Unfinished)
		require.Positive(t, summary.Nodes)
		require.Positive(t, summary.Throughput())

		runs, err := os.ReadDir(filepath.Join(out, "arena"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, name := range []string{"players.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(out, "arena", runs[0].Name(), name))
		}
	})

	t.Run("human players cannot take part", func(t *testing.T) {
		c := quickConfig(1)
		c.Players[0].Agent = agent.Human.String()

		_, err := RunArena("arena", c, 1, "")

		require.ErrorIs(t, err, agent.ErrConfiguration)
	})
}

func TestRunSpeedupExperiment(t *testing.T) {
	t.Run("one run per goroutine count", func(t *testing.T) {
		summaries, err := RunSpeedupExperiment(quickConfig(1), []int{1, 2}, "")

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		require.Positive(t, summaries[2].Nodes)
	})
}
