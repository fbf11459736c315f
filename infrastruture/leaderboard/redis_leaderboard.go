package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const boardKeyFmt = "%s:leaderboard:%s"

// RedisLeaderboard ranks successful episodes per variant in a Redis sorted set.
// The set expires ttl after its first entry unless ttl is zero.
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client, key prefix and TTL.
func NewRedisLeaderboard(client *redis.Client, prefix string, ttlSeconds int) (i.Leaderboard, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if ttlSeconds < 0 {
		return nil, fmt.Errorf("ttl must not be negative, got %d", ttlSeconds)
	}
	return &RedisLeaderboard{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Record adds an episode with its efficiency and sets expiration if necessary.
func (rl *RedisLeaderboard) Record(ctx context.Context, variant string, id uuid.UUID, efficiency float64) error {
	key := rl.key(variant)
	if err := rl.client.ZAdd(ctx, key, redis.Z{Score: efficiency, Member: id.String()}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if rl.ttl > 0 {
		ttl, err := rl.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rl.client.Expire(ctx, key, rl.ttl).Err()
		}
	}

	return nil
}

// Top returns up to n entries with the highest efficiency, best first.
func (rl *RedisLeaderboard) Top(ctx context.Context, variant string, n int64) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	zs, err := rl.client.ZRevRangeWithScores(ctx, rl.key(variant), 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, dmn.LeaderboardEntry{EpisodeID: id, Efficiency: z.Score})
	}
	return entries, nil
}

// Count returns the number of ranked episodes of a variant.
func (rl *RedisLeaderboard) Count(ctx context.Context, variant string) (int64, error) {
	return rl.client.ZCard(ctx, rl.key(variant)).Result()
}

func (rl *RedisLeaderboard) key(variant string) string {
	return fmt.Sprintf(boardKeyFmt, rl.prefix, variant)
}
