package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Characters used by the text form of a grid and by rendered views.
const (
	WallChar   = '#'
	OpenChar   = '.'
	StartChar  = 'S'
	GoalChar   = 'G'
	PlayerChar = 'P'
)

var (
	ErrMalformedGrid = errors.New("malformed grid")
)

// Cell is the content of a single grid square.
type Cell uint8

const (
	Wall Cell = iota // Impassable square.
	Open             // Carved, walkable square.
)

// String implements fmt.Stringer.
func (c Cell) String() string {
	if c == Open {
		return "OPEN"
	}
	return "WALL"
}

// Position is a column/row coordinate in the canonical grid.
type Position struct {
	X int // Column index
	Y int // Row index
}

// Add returns the position displaced by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a rectangular maze layout indexed as cells[row][col].
// A Grid is never mutated after generation or parsing.
type Grid struct {
	cells [][]Cell
}

// newWallGrid returns a width x height grid filled with walls.
func newWallGrid(width, height int) Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return Grid{cells: cells}
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g.cells)
}

// InBound reports whether p lies inside the grid.
func (g Grid) InBound(p Position) bool {
	return p.X >= 0 && p.X < g.Width() && p.Y >= 0 && p.Y < g.Height()
}

// At returns the cell at p. Out of bound positions read as walls.
func (g Grid) At(p Position) Cell {
	if !g.InBound(p) {
		return Wall
	}
	return g.cells[p.Y][p.X]
}

// IsOpen reports whether p is inside the grid and walkable.
func (g Grid) IsOpen(p Position) bool {
	return g.At(p) == Open
}

func (g Grid) set(p Position, c Cell) {
	g.cells[p.Y][p.X] = c
}

// chars returns a fresh character matrix of the grid, used as the base of a view.
func (g Grid) chars() [][]byte {
	rows := make([][]byte, g.Height())
	for y, row := range g.cells {
		rows[y] = make([]byte, len(row))
		for x, c := range row {
			if c == Open {
				rows[y][x] = OpenChar
			} else {
				rows[y][x] = WallChar
			}
		}
	}
	return rows
}

// String returns the serialized form: one line per row, '#' for walls and '.' for open cells.
func (g Grid) String() string {
	return joinRows(g.chars())
}

// ParseGrid reconstructs a grid from its text form.
// '#' is a wall; '.', ' ' and the markers 'S', 'G', 'P' are open cells.
// Rows must all have the same length.
func ParseGrid(s string) (Grid, error) {
	lines := strings.Split(strings.TrimRight(s, "\r\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if len(lines[0]) == 0 {
		return Grid{}, fmt.Errorf("%w: empty grid", ErrMalformedGrid)
	}

	width := len(lines[0])
	grid := newWallGrid(width, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return Grid{}, fmt.Errorf("%w: row %d has length %d, want %d", ErrMalformedGrid, y, len(line), width)
		}
		for x := 0; x < width; x++ {
			switch line[x] {
			case WallChar:
			case OpenChar, ' ', StartChar, GoalChar, PlayerChar:
				grid.set(Position{X: x, Y: y}, Open)
			default:
				return Grid{}, fmt.Errorf("%w: unexpected character %q at %d,%d", ErrMalformedGrid, line[x], x, y)
			}
		}
	}

	return grid, nil
}

func joinRows(rows [][]byte) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(row)
	}
	return b.String()
}
