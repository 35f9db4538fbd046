package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// raise sets the height of a cell directly, bypassing the build rules.
func raise(b Board, row, col, height int) Board {
	b.cells[row][col].Height = height
	return b
}

func TestBoard(t *testing.T) {
	t.Run("zero value is an empty board at ground level", func(t *testing.T) {
		var b Board
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				require.Equal(t, 0, b.HeightAt(row, col))
				require.False(t, b.CellAt(row, col).IsOccupied())
			}
		}
	})

	t.Run("transforms return a new board", func(t *testing.T) {
		var b Board
		at := b.PositionAt(2, 2)

		built := b.ApplyBuild(at)
		placed := b.Place(at, 1)

		require.Equal(t, 0, b.HeightAt(2, 2), "Original board should be untouched")
		require.False(t, b.CellAt(2, 2).IsOccupied())
		require.Equal(t, 1, built.HeightAt(2, 2))
		player, ok := placed.CellAt(2, 2).Occupant()
		require.True(t, ok)
		require.Equal(t, 1, player)
	})

	t.Run("moving a player keeps heights", func(t *testing.T) {
		var b Board
		b = raise(b, 1, 1, 2)
		from := b.PositionAt(0, 0)
		to := b.PositionAt(1, 1)
		b = b.Place(from, 0)

		b = b.ApplyMove(from, to, 0)

		require.False(t, b.CellAt(0, 0).IsOccupied())
		player, ok := b.CellAt(1, 1).Occupant()
		require.True(t, ok)
		require.Equal(t, 0, player)
		require.Equal(t, 2, b.HeightAt(1, 1))
	})

	t.Run("panics off the board", func(t *testing.T) {
		var b Board
		require.False(t, b.InBounds(-1, 0))
		require.False(t, b.InBounds(0, Size))
		require.Panics(t, func() { b.CellAt(Size, 0) })
		require.Panics(t, func() { b.ApplyBuild(Position{Row: -1, Col: 2}) })
	})

	t.Run("renders heights and occupants", func(t *testing.T) {
		var b Board
		b = raise(b, 0, 1, 3)
		b = b.Place(b.PositionAt(0, 0), 1)

		lines := b.String()
		require.Equal(t, "01 3. 0. 0. 0.\n", lines[:15])
	})
}

func TestPosition(t *testing.T) {
	t.Run("chebyshev distance", func(t *testing.T) {
		require.Equal(t, 0, Chebyshev(Position{Row: 2, Col: 2}, Position{Row: 2, Col: 2}))
		require.Equal(t, 1, Chebyshev(Position{Row: 2, Col: 2}, Position{Row: 3, Col: 3}))
		require.Equal(t, 4, Chebyshev(Position{Row: 0, Col: 0}, Position{Row: 4, Col: 1}))
	})

	t.Run("eliminated sentinel", func(t *testing.T) {
		require.True(t, Eliminated.IsEliminated())
		require.False(t, Position{}.IsEliminated())
		require.Equal(t, "eliminated", Eliminated.String())
		require.Equal(t, "(1,2,h3)", Position{Row: 1, Col: 2, Height: 3}.String())
	})
}
