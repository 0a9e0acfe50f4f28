package repository

import (
	"sort"
	"sync"
	"time"

	"jira-dashboard-service/internal/domain"
)

// StatsTracker реализует счетчики выполнения в памяти.
// Среднее считается инкрементально, без хранения сырых замеров.
type StatsTracker struct {
	mu    sync.RWMutex
	stats map[string]*queryStats
	now   func() time.Time
}

type queryStats struct {
	domain.ExecutionStats

	// число завершенных удаленных вызовов, знаменатель скользящего среднего
	remoteCount int64
}

// NewStatsTracker создает пустой трекер статистики.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{
		stats: make(map[string]*queryStats),
		now:   time.Now,
	}
}

// Record фиксирует завершенный удаленный вызов (успех или отказ).
// Счетчик результатов обновляется только при успехе.
func (t *StatsTracker) Record(queryID string, success bool, latency time.Duration, resultCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.ensure(queryID)
	s.ExecutionCount++
	if success {
		s.SuccessCount++
		s.LastResultCount = resultCount
	} else {
		s.FailureCount++
	}

	s.LastLatency = latency
	s.remoteCount++
	s.AverageLatency += (latency - s.AverageLatency) / time.Duration(s.remoteCount)
	s.LastExecutedAt = t.now()
}

// RecordCacheHit фиксирует попадание в кэш: это успешное выполнение,
// но латентность удаленных вызовов не пересчитывается.
func (t *StatsTracker) RecordCacheHit(queryID string, resultCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.ensure(queryID)
	s.ExecutionCount++
	s.SuccessCount++
	s.CacheHits++
	s.LastResultCount = resultCount
	s.LastExecutedAt = t.now()
}

// Get возвращает снимок статистики запроса.
func (t *StatsTracker) Get(queryID string) (domain.ExecutionStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, exists := t.stats[queryID]
	if !exists {
		return domain.ExecutionStats{}, false
	}
	return s.ExecutionStats, true
}

// All возвращает снимки статистики всех запросов, отсортированные по id.
func (t *StatsTracker) All() []domain.ExecutionStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := make([]domain.ExecutionStats, 0, len(t.stats))
	for _, s := range t.stats {
		all = append(all, s.ExecutionStats)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].QueryID < all[j].QueryID
	})
	return all
}

// Clear сбрасывает статистику одного запроса, no-op если ее нет.
func (t *StatsTracker) Clear(queryID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.stats, queryID)
}

// ClearAll сбрасывает всю статистику.
func (t *StatsTracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = make(map[string]*queryStats)
}

func (t *StatsTracker) ensure(queryID string) *queryStats {
	s, exists := t.stats[queryID]
	if !exists {
		s = &queryStats{ExecutionStats: domain.ExecutionStats{QueryID: queryID}}
		t.stats[queryID] = s
	}
	return s
}
