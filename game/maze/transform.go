package maze

import (
	"fmt"
	"math/rand/v2"
)

// Effect is a single change to the view transformation.
type Effect uint8

const (
	Rotate90 Effect = iota
	Rotate180
	Rotate270
	FlipH
	FlipV
)

// Effects lists every effect Select may draw from.
var Effects = [...]Effect{Rotate90, Rotate180, Rotate270, FlipH, FlipV}

var effectNames = [...]string{
	Rotate90:  "rotate_90",
	Rotate180: "rotate_180",
	Rotate270: "rotate_270",
	FlipH:     "flip_horizontal",
	FlipV:     "flip_vertical",
}

// String implements fmt.Stringer.
func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", e)
}

// Transform maps the canonical grid to the rendered view.
// Rendering applies Rotation clockwise quarter turns, then the horizontal flip, then the
// vertical flip.
type Transform struct {
	Rotation int  // Clockwise quarter turns, 0..3
	FlipH    bool // Reverse every row after rotating
	FlipV    bool // Reverse row order after rotating and FlipH
}

// IsIdentity reports whether the view equals the canonical grid.
func (t Transform) IsIdentity() bool {
	return t.Rotation%4 == 0 && !t.FlipH && !t.FlipV
}

// Apply composes e into t.
func (t *Transform) Apply(e Effect) {
	switch e {
	case Rotate90:
		t.Rotation = (t.Rotation + 1) % 4
	case Rotate180:
		t.Rotation = (t.Rotation + 2) % 4
	case Rotate270:
		t.Rotation = (t.Rotation + 3) % 4
	case FlipH:
		t.FlipH = !t.FlipH
	case FlipV:
		t.FlipV = !t.FlipV
	}
}

// Select draws one effect uniformly from Effects and applies it.
func (t *Transform) Select(rng *rand.Rand) Effect {
	e := Effects[rng.IntN(len(Effects))]
	t.Apply(e)
	return e
}

// Render returns a transformed copy of view. view must be rectangular.
func (t Transform) Render(view [][]byte) [][]byte {
	result := view
	for i := 0; i < t.Rotation%4; i++ {
		result = rotate90(result)
	}
	if t.FlipH {
		result = flipHorizontal(result)
	}
	if t.FlipV {
		result = flipVertical(result)
	}
	return result
}

// TranslateVisualToActual maps a direction seen on the rendered view to the displacement
// it represents on the canonical grid. It undoes Render step by step in reverse order:
// the vertical flip, the horizontal flip, then the rotation as counter-clockwise turns.
func (t Transform) TranslateVisualToActual(d Direction) (dx, dy int) {
	dx, dy = d.Delta()
	if t.FlipV {
		dy = -dy
	}
	if t.FlipH {
		dx = -dx
	}
	for i := 0; i < t.Rotation%4; i++ {
		dx, dy = dy, -dx
	}
	return dx, dy
}

// rotate90 turns an h x w matrix clockwise into a w x h matrix.
func rotate90(grid [][]byte) [][]byte {
	height := len(grid)
	if height == 0 {
		return grid
	}
	width := len(grid[0])

	rotated := make([][]byte, width)
	for x := range rotated {
		rotated[x] = make([]byte, height)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rotated[x][height-1-y] = grid[y][x]
		}
	}
	return rotated
}

func flipHorizontal(grid [][]byte) [][]byte {
	flipped := make([][]byte, len(grid))
	for y, row := range grid {
		flipped[y] = make([]byte, len(row))
		for x, c := range row {
			flipped[y][len(row)-1-x] = c
		}
	}
	return flipped
}

func flipVertical(grid [][]byte) [][]byte {
	flipped := make([][]byte, len(grid))
	for y, row := range grid {
		flipped[len(grid)-1-y] = row
	}
	return flipped
}
