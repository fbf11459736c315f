package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTools(t *testing.T) {
	tools := Tools()
	require.Len(t, tools, 4)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
		d, err := ParseDirection(tool.Name)
		require.NoError(t, err)
		assert.Equal(t, tool.Direction, d)
	}
	assert.Equal(t, []string{"move_up", "move_down", "move_left", "move_right"}, names)
}

func TestExecute(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		run := newRoomRun(t, Stationary, 5)
		_, _, err := run.Execute("jump")
		assert.ErrorIs(t, err, ErrUnknownDirection)
	})

	t.Run("moves and reports", func(t *testing.T) {
		run := newRoomRun(t, Stationary, 5)
		msg, res, err := run.Execute("move_right")
		require.NoError(t, err)
		assert.Equal(t, Moved, res.Outcome)
		assert.True(t, strings.HasPrefix(msg, "Moved right.\nSteps: 1/5\n\n"))
	})

	t.Run("terminal run", func(t *testing.T) {
		run := newRoomRun(t, Stationary, 1)
		_, _, err := run.Execute("move_right")
		require.NoError(t, err)

		msg, _, err := run.Execute("move_left")
		assert.ErrorIs(t, err, ErrEpisodeOver)
		assert.Contains(t, msg, "Episode is over")
		assert.Equal(t, 1, run.MoveCount())
	})
}

func TestParseDirectionAndVariant(t *testing.T) {
	for in, want := range map[string]Direction{"up": Up, "DOWN": Down, " move_left ": Left, "move_right": Right} {
		d, err := ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, d)
	}
	_, err := ParseDirection("north")
	assert.ErrorIs(t, err, ErrUnknownDirection)

	for in, want := range map[string]Variant{"stationary": Stationary, "non_stationary": NonStationary, "Non-Stationary": NonStationary} {
		v, err := ParseVariant(in)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = ParseVariant("rotating")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	assert.Equal(t, "non_stationary", NonStationary.String())
	assert.Equal(t, "flip_horizontal", FlipH.String())
}
