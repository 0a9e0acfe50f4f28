package domain

import "time"

// CachedResult — содержимое одной записи кэша результатов.
type CachedResult struct {
	QueryID  string
	Issues   []Issue
	Total    int
	StoredAt time.Time
}

// CacheEntryInfo — диагностическая информация об одной записи кэша.
type CacheEntryInfo struct {
	Key        string
	QueryID    string
	Age        time.Duration
	IssueCount int
}

// CacheInfo — сводка состояния кэша. Служит для диагностики,
// на корректность не влияет.
type CacheInfo struct {
	Entries      int
	CachedIssues int
	TTL          time.Duration
	EntryAges    []CacheEntryInfo
}

// CacheStore определяет контракт TTL-кэша результатов выполнения.
// Запись старше TTL считается отсутствующей при чтении; физическое
// удаление устаревших записей выполняется лениво при следующей записи.
type CacheStore interface {
	Get(key string) (*CachedResult, bool)
	Put(key string, value *CachedResult)
	Invalidate(key string)
	InvalidateQuery(queryID string)
	Clear()
	Info() CacheInfo
}
