package maze

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func mustParseGrid(t *testing.T, rows ...string) Grid {
	t.Helper()
	grid, err := ParseGrid(strings.Join(rows, "\n"))
	require.NoError(t, err)
	return grid
}

// findMarker returns the column and row of c in a rendered view.
func findMarker(t *testing.T, view string, c byte) (int, int) {
	t.Helper()
	for y, line := range strings.Split(view, "\n") {
		if x := strings.IndexByte(line, c); x >= 0 {
			return x, y
		}
	}
	t.Fatalf("marker %q not found in view:\n%s", c, view)
	return -1, -1
}

// openMove returns a visual direction whose translated target is open, if any.
func openMove(r *Run) (Direction, bool) {
	for _, d := range Directions {
		dx, dy := r.Transform().TranslateVisualToActual(d)
		if r.Grid().IsOpen(r.Current().Add(dx, dy)) {
			return d, true
		}
	}
	return 0, false
}
