package watchlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "watchlist:"

// RedisBackend keeps each list as a JSON array under watchlist:<code>
// with a native key expiry.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend wraps a connected client.
func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func (b *RedisBackend) PutNew(ctx context.Context, code string, films []string, ttl time.Duration) (bool, error) {
	val, err := json.Marshal(films)
	if err != nil {
		return false, err
	}
	return b.rdb.SetNX(ctx, redisKeyPrefix+code, val, ttl).Result()
}

func (b *RedisBackend) Replace(ctx context.Context, code string, films []string, ttl time.Duration) (bool, error) {
	val, err := json.Marshal(films)
	if err != nil {
		return false, err
	}
	return b.rdb.SetXX(ctx, redisKeyPrefix+code, val, ttl).Result()
}

func (b *RedisBackend) Get(ctx context.Context, code string) ([]string, time.Time, error) {
	key := redisKeyPrefix + code
	var (
		getCmd *redis.StringCmd
		ttlCmd *redis.DurationCmd
	)
	_, err := b.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		getCmd = p.Get(ctx, key)
		ttlCmd = p.PTTL(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, time.Time{}, err
	}
	raw, err := getCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var films []string
	if err := json.Unmarshal(raw, &films); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode watchlist %s: %w", code, err)
	}
	var exp time.Time
	if ttl := ttlCmd.Val(); ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	return films, exp, nil
}
