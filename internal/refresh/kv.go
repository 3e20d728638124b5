package refresh

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// KV persists the digests of the last successful refresh.
type KV interface {
	Load(ctx context.Context) (Digests, error)
	Save(ctx context.Context, d Digests) error
}

// DefaultKey is the Redis hash holding the digests.
const DefaultKey = "refresh:digests"

// RedisKV keeps digests in one Redis hash.
type RedisKV struct {
	rdb *redis.Client
	key string
}

// NewRedisKV returns a KV backed by rdb.  An empty key selects DefaultKey.
func NewRedisKV(rdb *redis.Client, key string) *RedisKV {
	if key == "" {
		key = DefaultKey
	}
	return &RedisKV{rdb: rdb, key: key}
}

func (r *RedisKV) Load(ctx context.Context) (Digests, error) {
	m, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	return Digests(m), nil
}

// Save replaces the whole hash in one transaction.
func (r *RedisKV) Save(ctx context.Context, d Digests) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.key)
		if len(d) > 0 {
			fields := make(map[string]any, len(d))
			for k, v := range d {
				fields[k] = v
			}
			p.HSet(ctx, r.key, fields)
		}
		return nil
	})
	return err
}

// MemoryKV keeps digests in process memory.  Used when Redis is down and
// in tests.
type MemoryKV struct {
	mu sync.Mutex
	d  Digests
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{} }

func (m *MemoryKV) Load(context.Context) (Digests, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Digests, len(m.d))
	for k, v := range m.d {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryKV) Save(_ context.Context, d Digests) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d = make(Digests, len(d))
	for k, v := range d {
		m.d[k] = v
	}
	return nil
}
