package domain

import "time"

// ExecutionResult представляет результат выполнения запроса из каталога.
type ExecutionResult struct {
	Query     *QueryDefinition
	Issues    []Issue
	Total     int
	FromCache bool
	Duration  time.Duration
	FetchedAt time.Time
	Stats     ExecutionStats
}
