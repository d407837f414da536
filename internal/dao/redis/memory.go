package redis

import (
	"context"
	"path"
	"sync"
	"time"

	"groupies/pkg/errorx"
	"groupies/pkg/util/workerpool"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // 零值表示不过期
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache 进程内缓存，未配置 Redis 时使用，仅适合单实例部署
// 过期键在读取时惰性删除
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	pool  *workerpool.Pool
	now   func() time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache(workerNum, taskChanSize int) *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryEntry),
		pool:  workerpool.New("memory-cache", workerNum, taskChanSize),
		now:   time.Now,
	}
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	value, err := m.GetOrError(ctx, key)
	if errorx.IsNotFound(err) {
		return "", nil
	}
	return value, err
}

func (m *MemoryCache) GetOrError(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()
	if ok && entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		ok = false
	}
	if !ok {
		return "", errorx.Newf(errorx.CodeNotFound, "cache key %s not found", key)
	}
	return entry.value, nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// DeleteByPattern 使用 path.Match，语义与 redis glob 的 * ? [] 一致
func (m *MemoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "bad pattern %s", pattern)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.items, key)
		}
	}
	return nil
}

func (m *MemoryCache) SubmitTask(action func()) {
	m.pool.Submit(action)
}

func (m *MemoryCache) Close() error {
	m.pool.Close()
	return nil
}

var _ AsyncCacheService = (*MemoryCache)(nil)
