package cart

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

// MemoryStore is an in-process Store, the moral equivalent of browser local
// storage: synchronous keyed read-modify-write, no cross-writer locking.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]Item)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items[key]...), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]Item(nil), items...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// RedisStore persists carts as JSON values in redis. TTL zero means no
// expiry; carts never expire on their own.
type RedisStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{RDB: rdb}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]Item, error) {
	var items []Item
	found, err := helpers.RedisGetJSON(ctx, s.RDB, key, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, items []Item) error {
	return helpers.RedisSetJSON(ctx, s.RDB, key, items, s.TTL)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, s.RDB, key)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
