package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRun(t *testing.T) {
	grid := mustParseGrid(t, "#####", "#...#", "#####")

	t.Run("success", func(t *testing.T) {
		run, err := NewRun(RunConfig{Grid: grid, Start: Position{X: 1, Y: 1}, Goal: Position{X: 3, Y: 1}, OptimalPathLength: 2, MaxSteps: 6}, nil)
		require.NoError(t, err)
		for _, d := range []Direction{Right, Left, Right, Right} {
			_, err := run.AttemptMove(d)
			require.NoError(t, err)
		}

		score := ScoreRun(run)
		assert.True(t, score.Success)
		assert.Equal(t, 1.0, score.Value())
		assert.Equal(t, 4, score.StepsTaken)
		assert.Equal(t, 2, score.OptimalSteps)
		assert.InDelta(t, 0.5, score.Efficiency, 1e-9)
	})

	t.Run("failure", func(t *testing.T) {
		run, err := NewRun(RunConfig{Grid: grid, Start: Position{X: 1, Y: 1}, Goal: Position{X: 3, Y: 1}, OptimalPathLength: 2, MaxSteps: 2}, nil)
		require.NoError(t, err)
		for _, d := range []Direction{Right, Left} {
			_, err := run.AttemptMove(d)
			require.NoError(t, err)
		}

		score := ScoreRun(run)
		assert.Equal(t, Failed, run.Status())
		assert.False(t, score.Success)
		assert.Zero(t, score.Value())
		assert.Zero(t, score.Efficiency)
		assert.Equal(t, 2, score.StepsTaken)
	})
}
