package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Draft records are working state, not bookkeeping; let Redis reclaim them
// after a quiet week.
const redisTTL = 7 * 24 * time.Hour

// RedisStore backs the draft cache with Redis so several counters of the
// same shop can share in-progress bills.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore connects and pings once so a bad address fails at startup
// instead of on the first save.
func NewRedisStore(ctx context.Context, addr, password, namespace string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kvstore: redis ping %s: %w", addr, err)
	}
	if namespace == "" {
		namespace = "khata"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}, nil
}

func (s *RedisStore) key(k string) string { return s.namespace + ":" + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), value, redisTTL).Err(); err != nil {
		return fmt.Errorf("kvstore: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, s.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(s.namespace)+1:])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kvstore: redis scan: %w", err)
	}
	return keys, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error { return s.rdb.Close() }
