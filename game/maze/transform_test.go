package maze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTransforms() []Transform {
	var all []Transform
	for rot := 0; rot < 4; rot++ {
		for _, fh := range []bool{false, true} {
			for _, fv := range []bool{false, true} {
				all = append(all, Transform{Rotation: rot, FlipH: fh, FlipV: fv})
			}
		}
	}
	return all
}

func TestTransformApply(t *testing.T) {
	t.Run("four quarter turns are the identity", func(t *testing.T) {
		tr := Transform{Rotation: 1, FlipH: true}
		for i := 0; i < 4; i++ {
			tr.Apply(Rotate90)
		}
		assert.Equal(t, Transform{Rotation: 1, FlipH: true}, tr)
	})

	t.Run("two quarter turns equal a half turn", func(t *testing.T) {
		var a, b Transform
		a.Apply(Rotate90)
		a.Apply(Rotate90)
		b.Apply(Rotate180)
		assert.Equal(t, b, a)

		a.Apply(Rotate270)
		b.Apply(Rotate90)
		b.Apply(Rotate180)
		assert.Equal(t, b, a)
	})

	t.Run("flips toggle", func(t *testing.T) {
		var tr Transform
		tr.Apply(FlipH)
		tr.Apply(FlipV)
		assert.Equal(t, Transform{FlipH: true, FlipV: true}, tr)
		tr.Apply(FlipH)
		tr.Apply(FlipV)
		assert.True(t, tr.IsIdentity())
	})

	t.Run("every effect changes the state", func(t *testing.T) {
		for _, e := range Effects {
			var tr Transform
			tr.Apply(e)
			assert.False(t, tr.IsIdentity(), e.String())
		}
	})
}

func TestTransformSelect(t *testing.T) {
	rng := newTestRand(3)
	seen := map[Effect]int{}
	for i := 0; i < 500; i++ {
		var tr Transform
		e := tr.Select(rng)
		seen[e]++

		var want Transform
		want.Apply(e)
		assert.Equal(t, want, tr)
	}

	assert.Len(t, seen, len(Effects))
	for e, n := range seen {
		assert.Greater(t, n, 50, "effect %s drawn too rarely", e)
	}
}

func TestTransformRender(t *testing.T) {
	view := [][]byte{
		[]byte("abc"),
		[]byte("def"),
	}

	render := func(tr Transform) string { return joinRows(tr.Render(view)) }

	assert.Equal(t, "abc\ndef", render(Transform{}))
	assert.Equal(t, "da\neb\nfc", render(Transform{Rotation: 1}))
	assert.Equal(t, "fed\ncba", render(Transform{Rotation: 2}))
	assert.Equal(t, "cf\nbe\nad", render(Transform{Rotation: 3}))
	assert.Equal(t, "cba\nfed", render(Transform{FlipH: true}))
	assert.Equal(t, "def\nabc", render(Transform{FlipV: true}))
	assert.Equal(t, "ad\nbe\ncf", render(Transform{Rotation: 1, FlipH: true}))
	assert.Equal(t, "fc\neb\nda", render(Transform{Rotation: 1, FlipV: true}))

	assert.Equal(t, "abc\ndef", joinRows(view), "render must not mutate its input")
}

func TestTranslateVisualToActual(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		var tr Transform
		for _, d := range Directions {
			dx, dy := tr.TranslateVisualToActual(d)
			wx, wy := d.Delta()
			assert.Equal(t, [2]int{wx, wy}, [2]int{dx, dy})
		}
	})

	t.Run("quarter turn", func(t *testing.T) {
		tr := Transform{Rotation: 1}
		dx, dy := tr.TranslateVisualToActual(Up)
		assert.Equal(t, [2]int{-1, 0}, [2]int{dx, dy})
		dx, dy = tr.TranslateVisualToActual(Right)
		assert.Equal(t, [2]int{0, -1}, [2]int{dx, dy})
	})

	t.Run("rendered marker follows the requested direction", func(t *testing.T) {
		grid := mustParseGrid(t,
			"#######",
			"#.....#",
			"#.....#",
			"#.....#",
			"#######",
		)

		for _, tr := range allTransforms() {
			for _, d := range Directions {
				t.Run(fmt.Sprintf("%+v/%s", tr, d), func(t *testing.T) {
					run, err := NewRun(RunConfig{
						Grid:     grid,
						Start:    Position{X: 3, Y: 2},
						Goal:     Position{X: 1, Y: 1},
						MaxSteps: 10,
					}, nil)
					require.NoError(t, err)
					run.transform = tr

					bx, by := findMarker(t, run.View(), PlayerChar)
					res, err := run.AttemptMove(d)
					require.NoError(t, err)
					require.Equal(t, Moved, res.Outcome)

					ax, ay := findMarker(t, res.View, PlayerChar)
					wx, wy := d.Delta()
					assert.Equal(t, [2]int{wx, wy}, [2]int{ax - bx, ay - by})
					assert.Equal(t, 1, abs(res.DX)+abs(res.DY))
				})
			}
		}
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
