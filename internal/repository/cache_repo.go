package repository

import (
	"sort"
	"sync"
	"time"

	"jira-dashboard-service/internal/domain"
)

// MemoryCacheStore реализует TTL-кэш результатов выполнения в памяти.
// Запись старше TTL считается отсутствующей при чтении; физически
// устаревшие записи удаляются при следующей успешной записи.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*domain.CachedResult
	now     func() time.Time
}

// NewMemoryCacheStore создает кэш с заданным TTL.
func NewMemoryCacheStore(ttl time.Duration) *MemoryCacheStore {
	return &MemoryCacheStore{
		ttl:     ttl,
		entries: make(map[string]*domain.CachedResult),
		now:     time.Now,
	}
}

// Get возвращает запись, если она есть и не устарела.
// Устаревшая запись трактуется как промах, но не удаляется.
func (c *MemoryCacheStore) Get(key string) (*domain.CachedResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || c.expired(entry) {
		return nil, false
	}
	return entry, true
}

// Put безусловно перезаписывает запись, проставляя StoredAt, и попутно
// выметает устаревшие записи.
func (c *MemoryCacheStore) Put(key string, value *domain.CachedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, k)
		}
	}

	value.StoredAt = c.now()
	c.entries[key] = value
}

// Invalidate удаляет запись по ключу, no-op если ее нет.
func (c *MemoryCacheStore) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateQuery удаляет все записи, порожденные данным запросом.
func (c *MemoryCacheStore) InvalidateQuery(queryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.QueryID == queryID {
			delete(c.entries, key)
		}
	}
}

// Clear удаляет все записи.
func (c *MemoryCacheStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.CachedResult)
}

// Info возвращает диагностическую сводку кэша, включая устаревшие,
// но еще не вымытые записи.
func (c *MemoryCacheStore) Info() domain.CacheInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := domain.CacheInfo{
		Entries: len(c.entries),
		TTL:     c.ttl,
	}
	for key, entry := range c.entries {
		info.CachedIssues += len(entry.Issues)
		info.EntryAges = append(info.EntryAges, domain.CacheEntryInfo{
			Key:        key,
			QueryID:    entry.QueryID,
			Age:        c.now().Sub(entry.StoredAt),
			IssueCount: len(entry.Issues),
		})
	}
	sort.Slice(info.EntryAges, func(i, j int) bool {
		return info.EntryAges[i].Key < info.EntryAges[j].Key
	})
	return info
}

func (c *MemoryCacheStore) expired(entry *domain.CachedResult) bool {
	return c.now().Sub(entry.StoredAt) >= c.ttl
}
