package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AdrienDelgado/SantoriniAI/game"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 3)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
					c.AddLeaf()
				}
				c.AddPrune()
			}()
		}
		wg.Wait()
		c.AddTerminal()
		c.AddTimeout()

		m := c.Complete(1.5)
		require.Equal(t, 4, m.Goroutines)
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 400, m.Nodes)
		require.Equal(t, 400, m.Leaves)
		require.Equal(t, 4, m.Prunes)
		require.Equal(t, 1, m.Terminals)
		require.Equal(t, 1, m.Timeouts)
		require.Equal(t, 1.5, m.Value)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddNode()
		c.Start(1, 2)

		require.Zero(t, c.Complete(0).Nodes)
	})

	t.Run("dummy collector only keeps the value", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2, 2)
		c.AddNode()

		require.Equal(t, SearchMetric{Value: -1}, c.Complete(-1))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "arena")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("player records", func(t *testing.T) {
		err := w.WritePlayerRecords([]PlayerRecord{
			{Player: 0, Name: "green", Agent: "MiniMax", Depth: 4, Evaluation: "composite", Goroutines: 2, Timeout: time.Second},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "players.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"0", "green", "MiniMax", "4", "composite", "2", "1s"}, rows[1])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{Game: 1, GameMetric: GameMetric{
			ID: "abc", Winner: 1, StartTime: start, EndTime: start.Add(time.Minute), Duration: time.Minute, TotalMoves: 42,
		}}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Equal(t, []string{"1", "abc", "0", "1", "2024-01-02T03:04:05Z", "2024-01-02T03:05:05Z", "1m0s", "42"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{
			Step: 3, Player: 1, Phase: game.BuildAction, Action: game.Build(game.UpLeft),
			SearchMetric: SearchMetric{Depth: 2, Nodes: 10, Prunes: 2, Value: 0.5},
		}}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "game", rows[0][0])
		require.Equal(t, []string{"1", "3", "1", "build", "build ul", "0s", "2", "10", "0", "0", "2", "0", "0.5"}, rows[1])
	})
}

func TestNewWriter(t *testing.T) {
	t.Run("runs in the same second do not collide", func(t *testing.T) {
		root := t.TempDir()

		first, err := NewWriter(root, "arena")
		require.NoError(t, err)
		second, err := NewWriter(root, "arena")
		require.NoError(t, err)

		require.NotEqual(t, first.Dir(), second.Dir())
		require.NoError(t, first.WriteGameRecords([]GameRecord{{Game: 1}}))
		require.NoError(t, second.WriteGameRecords([]GameRecord{{Game: 2}}))
		require.Equal(t, "1", readCSV(t, filepath.Join(first.Dir(), "game_records.csv"))[1][0])
		require.Equal(t, "2", readCSV(t, filepath.Join(second.Dir(), "game_records.csv"))[1][0])
	})

	t.Run("reports failed writes", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "arena")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(w.Dir()))

		require.Error(t, w.WriteMoveRecords(nil))
	})
}
