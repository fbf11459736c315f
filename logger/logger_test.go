package logger

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/rotating-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("levels and prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("EPISODE", config.ColorCyan, &buf)
		require.NoError(t, err)

		l.Info("created")
		l.Warning("slow store")
		l.Error("lost lock")

		out := buf.String()
		assert.Contains(t, out, "[EPISODE]\033[0m [INFO] created")
		assert.Contains(t, out, "[EPISODE]\033[0m [WARNING] slow store")
		assert.Contains(t, out, "[EPISODE]\033[0m [ERROR] lost lock")
		assert.Contains(t, out, config.ColorCyan+"[EPISODE]")
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := New("APP", "", nil)
		assert.Error(t, err)

		_, err = New("", "", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
