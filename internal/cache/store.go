package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 会话态键值存储，Redis 与内存两种实现
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	// Take 原子地读取并删除，用于一次性凭据
	Take(ctx context.Context, key string) ([]byte, bool, error)
}

// NewDefaultStore Redis 启用时返回 RedisStore，否则退化为进程内存储
func NewDefaultStore() Store {
	if Enabled() {
		return NewRedisStore(redisClient, redisPrefix)
	}
	return NewMemoryStore()
}

// RedisStore 基于 Redis 的存储
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get 读取
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, joinKey(s.prefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set 写入，ttl<=0 表示不过期
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, joinKey(s.prefix, key), value, ttl).Err()
}

// Del 删除
func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, joinKey(s.prefix, key)).Err()
}

// Take 使用 GETDEL 原子读取并删除
func (s *RedisStore) Take(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.GetDel(ctx, joinKey(s.prefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore 进程内存储，仅适用于单实例与测试
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get 读取
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.lookupLocked(key)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(entry.value), true, nil
}

// Set 写入
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: cloneBytes(value)}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

// Del 删除
func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Take 读取并删除
func (s *MemoryStore) Take(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.lookupLocked(key)
	if !ok {
		return nil, false, nil
	}
	delete(s.entries, key)
	return entry.value, true, nil
}

// Len 当前有效键数量
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	now := s.now()
	for _, entry := range s.entries {
		if !entry.expired(now) {
			count++
		}
	}
	return count
}

func (s *MemoryStore) lookupLocked(key string) (memoryEntry, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
