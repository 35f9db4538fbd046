package game

import (
	"fmt"
	"strings"
)

const (
	Size      = 5 // Board is Size x Size
	MaxHeight = 4 // Capped tower, never enterable nor buildable
	WinHeight = 3 // Standing on this height wins the game
)

// Position is a player's cell plus the height of that cell. Height is derived
// from the board and is only meaningful for in-bounds positions.
type Position struct {
	Row    int
	Col    int
	Height int
}

// Eliminated marks the position of a player removed from the board.
var Eliminated = Position{Row: -1, Col: -1, Height: -1}

func (p Position) IsEliminated() bool {
	return p == Eliminated
}

func (p Position) String() string {
	if p.IsEliminated() {
		return "eliminated"
	}
	return fmt.Sprintf("(%d,%d,h%d)", p.Row, p.Col, p.Height)
}

// Chebyshev returns max(|Δrow|, |Δcol|) between two positions.
func Chebyshev(a, b Position) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Cell holds an optional occupant and a construction height.
type Cell struct {
	occupant int // player index + 1, 0 when empty
	Height   int
}

// Occupant returns the index of the player standing on the cell, if any.
func (c Cell) Occupant() (player int, ok bool) {
	if c.occupant == 0 {
		return 0, false
	}
	return c.occupant - 1, true
}

func (c Cell) IsOccupied() bool {
	return c.occupant != 0
}

// Board is a fixed grid of cells. It is a value type: assigning or passing a
// Board copies it, so hypothetical branches never share cells. The zero value
// is an empty board at ground level.
type Board struct {
	cells [Size][Size]Cell
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Size && col < Size
}

// CellAt panics when (row, col) is off the board.
func (b Board) CellAt(row, col int) Cell {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("cell (%d,%d) is out of bounds", row, col))
	}
	return b.cells[row][col]
}

func (b Board) HeightAt(row, col int) int {
	return b.CellAt(row, col).Height
}

// PositionAt returns the in-bounds position (row, col) with its current height.
func (b Board) PositionAt(row, col int) Position {
	return Position{Row: row, Col: col, Height: b.HeightAt(row, col)}
}

// ApplyMove moves player from one cell to another without any legality check.
func (b Board) ApplyMove(from, to Position, player int) Board {
	b.mustContain(from)
	b.mustContain(to)
	b.cells[from.Row][from.Col].occupant = 0
	b.cells[to.Row][to.Col].occupant = player + 1
	return b
}

// ApplyBuild raises the cell at by one level without any legality check.
func (b Board) ApplyBuild(at Position) Board {
	b.mustContain(at)
	b.cells[at.Row][at.Col].Height++
	return b
}

// Place puts player on a cell, used during the placement phase.
func (b Board) Place(at Position, player int) Board {
	b.mustContain(at)
	b.cells[at.Row][at.Col].occupant = player + 1
	return b
}

// Remove clears the occupant of a cell.
func (b Board) Remove(at Position) Board {
	b.mustContain(at)
	b.cells[at.Row][at.Col].occupant = 0
	return b
}

func (b Board) mustContain(p Position) {
	if !b.InBounds(p.Row, p.Col) {
		panic(fmt.Sprintf("position %s is out of bounds", p))
	}
}

// String renders one line per row, each cell as its height followed by the
// occupant index or a dot.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			cell := b.cells[row][col]
			if col > 0 {
				sb.WriteByte(' ')
			}
			if player, ok := cell.Occupant(); ok {
				fmt.Fprintf(&sb, "%d%d", cell.Height, player)
			} else {
				fmt.Fprintf(&sb, "%d.", cell.Height)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
