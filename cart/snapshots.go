package cart

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshots stores cart snapshots in Redis under "cart:<key>".
type RedisSnapshots struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshots(client *redis.Client, ttl time.Duration) *RedisSnapshots {
	return &RedisSnapshots{client: client, ttl: ttl}
}

func (r *RedisSnapshots) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, "cart:"+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisSnapshots) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, "cart:"+key, data, r.ttl).Err()
}

func (r *RedisSnapshots) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, "cart:"+key).Err()
}

// MemorySnapshots is the fallback when Redis is not configured. Snapshots
// live for the process lifetime only.
type MemorySnapshots struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string][]byte)}
}

func (m *MemorySnapshots) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

func (m *MemorySnapshots) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *MemorySnapshots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
