package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoard(t *testing.T, ttlSeconds int) (*RedisLeaderboard, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	board, err := NewRedisLeaderboard(client, "test", ttlSeconds)
	require.NoError(t, err)
	return board.(*RedisLeaderboard), mr
}

func TestRedisLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks by efficiency", func(t *testing.T) {
		board, _ := setupBoard(t, 0)
		slow, fast, mid := uuid.New(), uuid.New(), uuid.New()

		require.NoError(t, board.Record(ctx, "stationary", slow, 0.25))
		require.NoError(t, board.Record(ctx, "stationary", fast, 1))
		require.NoError(t, board.Record(ctx, "stationary", mid, 0.5))
		require.NoError(t, board.Record(ctx, "non_stationary", uuid.New(), 0.9))

		top, err := board.Top(ctx, "stationary", 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, fast, top[0].EpisodeID)
		assert.Equal(t, 1.0, top[0].Efficiency)
		assert.Equal(t, mid, top[1].EpisodeID)

		count, err := board.Count(ctx, "stationary")
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("re-recording updates the entry", func(t *testing.T) {
		board, _ := setupBoard(t, 0)
		id := uuid.New()

		require.NoError(t, board.Record(ctx, "stationary", id, 0.5))
		require.NoError(t, board.Record(ctx, "stationary", id, 0.75))

		top, err := board.Top(ctx, "stationary", 10)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, 0.75, top[0].Efficiency)
	})

	t.Run("expires from first entry", func(t *testing.T) {
		board, mr := setupBoard(t, 30)
		require.NoError(t, board.Record(ctx, "stationary", uuid.New(), 1))
		assert.Equal(t, 30*time.Second, mr.TTL("test:leaderboard:stationary"))

		mr.FastForward(10 * time.Second)
		require.NoError(t, board.Record(ctx, "stationary", uuid.New(), 1))
		assert.Equal(t, 20*time.Second, mr.TTL("test:leaderboard:stationary"))

		mr.FastForward(21 * time.Second)
		top, err := board.Top(ctx, "stationary", 10)
		require.NoError(t, err)
		assert.Empty(t, top)
	})

	t.Run("empty requests", func(t *testing.T) {
		board, _ := setupBoard(t, 0)
		top, err := board.Top(ctx, "stationary", 0)
		require.NoError(t, err)
		assert.Empty(t, top)
	})

	t.Run("invalid construction", func(t *testing.T) {
		_, err := NewRedisLeaderboard(nil, "test", 0)
		assert.Error(t, err)

		client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		defer client.Close()
		_, err = NewRedisLeaderboard(client, "test", -1)
		assert.Error(t, err)
	})
}
