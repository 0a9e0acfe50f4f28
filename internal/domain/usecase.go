package domain

import "context"

// CreateQueryInput — данные для создания пользовательского запроса.
type CreateQueryInput struct {
	Name        string
	Description string
	JQL         string
	Category    Category
	Tags        []string
	MaxResults  int
}

// CatalogInfo — сводка каталога для explorer-эндпоинта.
type CatalogInfo struct {
	Categories []Category
	Tags       []string
	Counts     map[Category]int
	Total      int
}

// QueryUseCase определяет бизнес-логику каталога запросов.
type QueryUseCase interface {
	ListQueries(ctx context.Context, filter QueryFilter) ([]*QueryDefinition, error)
	GetQuery(ctx context.Context, id string) (*QueryDefinition, error)
	CreateQuery(ctx context.Context, input CreateQueryInput) (*QueryDefinition, error)
	RemoveQuery(ctx context.Context, id string) error
	ValidateJQL(ctx context.Context, jql string) error
	Catalog(ctx context.Context) (*CatalogInfo, error)
}

// ExecutorUseCase определяет бизнес-логику выполнения запросов и
// владеет кэшем результатов.
type ExecutorUseCase interface {
	Execute(ctx context.Context, queryID string, forceRefresh bool) (*ExecutionResult, error)
	CacheInfo(ctx context.Context) (CacheInfo, error)
	InvalidateCache(ctx context.Context, queryID string) error
	ClearCache(ctx context.Context) error
}

// StatsUseCase определяет бизнес-логику статистики выполнения.
type StatsUseCase interface {
	GetStats(ctx context.Context, queryID string) (ExecutionStats, error)
	AllStats(ctx context.Context) ([]ExecutionStats, error)
	ClearStats(ctx context.Context, queryID string) error
	ClearAllStats(ctx context.Context) error
}
