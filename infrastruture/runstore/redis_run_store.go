package runstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "rotating-maze"
	episodeKeyFmt = "%s:episode:%s"
	lockSuffix    = ":lock"

	lockExpiry = 10 * time.Second
	lockTries  = 64
)

// RedisRunStore keeps encoded run snapshots in Redis with a TTL.
type RedisRunStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisRunStore initializes a RedisRunStore with the provided Redis client, key prefix and TTL.
func NewRedisRunStore(client *redis.Client, prefix string, ttlSeconds int) (i.RunStore, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("ttl must be positive, got %d", ttlSeconds)
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	store := &RedisRunStore{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save stores the snapshot and resets its expiration.
func (s *RedisRunStore) Save(ctx context.Context, id uuid.UUID, snapshot []byte) error {
	return s.client.Set(ctx, s.key(id), snapshot, s.ttl).Err()
}

// Load returns the stored snapshot or dmn.ErrEpisodeNotFound.
func (s *RedisRunStore) Load(ctx context.Context, id uuid.UUID) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dmn.ErrEpisodeNotFound
	}
	return b, err
}

// Delete removes the stored snapshot.
func (s *RedisRunStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Lock acquires the episode's distributed mutex.
func (s *RedisRunStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(s.key(id)+lockSuffix, redsync.WithExpiry(lockExpiry), redsync.WithTries(lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking episode %s: %w", id, err)
	}

	return func() {
		_, _ = mutex.UnlockContext(context.WithoutCancel(ctx))
	}, nil
}

func (s *RedisRunStore) key(id uuid.UUID) string {
	return fmt.Sprintf(episodeKeyFmt, s.prefix, id)
}
