package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInstance(t *testing.T) {
	t.Run("size, budget and initial view", func(t *testing.T) {
		rng := newTestRand(21)
		for i := 0; i < 25; i++ {
			inst, err := GenerateInstance(DefaultSizeRange, NonStationary, rng)
			require.NoError(t, err)

			size := inst.Grid.Width()
			assert.Equal(t, size, inst.Grid.Height())
			assert.Equal(t, 1, size%2)
			assert.GreaterOrEqual(t, size, DefaultSizeRange.Min)
			assert.LessOrEqual(t, size, DefaultSizeRange.Max+1)

			assert.Equal(t, 3*inst.OptimalPathLength, inst.MaxSteps)
			assert.Equal(t, NonStationary, inst.Variant)

			rows := strings.Split(inst.InitialView, "\n")
			require.Len(t, rows, size)
			assert.Equal(t, byte(PlayerChar), rows[1][1])
			assert.Equal(t, byte(GoalChar), rows[size-2][size-2])
			assert.NotContains(t, inst.InitialView, string(StartChar))
		}
	})

	t.Run("single size range", func(t *testing.T) {
		inst, err := GenerateInstance(SizeRange{Min: 8, Max: 8}, Stationary, newTestRand(2))
		require.NoError(t, err)
		assert.Equal(t, 9, inst.Grid.Width())
	})

	t.Run("invalid ranges", func(t *testing.T) {
		for _, sr := range []SizeRange{{Min: 0, Max: 5}, {Min: -4, Max: -1}, {Min: 9, Max: 7}} {
			_, err := GenerateInstance(sr, Stationary, newTestRand(1))
			assert.ErrorIs(t, err, ErrInvalidSizeRange, "%+v", sr)
		}
	})

	t.Run("new runs start fresh", func(t *testing.T) {
		inst, err := GenerateInstance(SizeRange{Min: 9, Max: 9}, Stationary, newTestRand(4))
		require.NoError(t, err)

		run, err := inst.NewRun(nil)
		require.NoError(t, err)
		assert.Equal(t, inst.Start, run.Current())
		assert.Equal(t, inst.InitialView, run.View())
	})
}
