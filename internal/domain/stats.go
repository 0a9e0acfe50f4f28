package domain

import "time"

// ExecutionStats представляет накопленную статистику выполнения одного
// запроса. Счетчики только растут, сбрасываются явной операцией очистки.
type ExecutionStats struct {
	QueryID         string
	ExecutionCount  int64
	SuccessCount    int64
	FailureCount    int64
	CacheHits       int64
	LastLatency     time.Duration
	AverageLatency  time.Duration
	LastResultCount int
	LastExecutedAt  time.Time
}

// SuccessRate возвращает долю успешных выполнений.
func (s ExecutionStats) SuccessRate() float64 {
	if s.ExecutionCount == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.ExecutionCount)
}

// StatsTracker определяет контракт счетчиков выполнения.
// AverageLatency — скользящее среднее только по удаленным вызовам;
// попадания в кэш учитываются в счетчиках, но не в латентности.
type StatsTracker interface {
	Record(queryID string, success bool, latency time.Duration, resultCount int)
	RecordCacheHit(queryID string, resultCount int)
	Get(queryID string) (ExecutionStats, bool)
	All() []ExecutionStats
	Clear(queryID string)
	ClearAll()
}
