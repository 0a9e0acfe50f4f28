package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"jira-dashboard-service/internal/domain"
)

// ExecutorUseCase реализует выполнение запросов каталога с кэшем
// результатов и учетом статистики.
type ExecutorUseCase struct {
	queryRepo domain.QueryRepository
	cache     domain.CacheStore
	stats     domain.StatsTracker
	search    domain.SearchClient
}

// NewExecutorUseCase создает новый экземпляр ExecutorUseCase.
// search может быть nil, тогда выполнение вернет ошибку конфигурации.
func NewExecutorUseCase(
	queryRepo domain.QueryRepository,
	cache domain.CacheStore,
	stats domain.StatsTracker,
	search domain.SearchClient,
) domain.ExecutorUseCase {
	return &ExecutorUseCase{
		queryRepo: queryRepo,
		cache:     cache,
		stats:     stats,
		search:    search,
	}
}

// Execute выполняет запрос по id. Отказ удаленного API никогда не
// вытесняет ранее закэшированный успешный результат.
func (uc *ExecutorUseCase) Execute(ctx context.Context, queryID string, forceRefresh bool) (*domain.ExecutionResult, error) {
	start := time.Now()

	// 1. Получаем определение из каталога
	query, err := uc.queryRepo.GetByID(ctx, queryID)
	if err != nil {
		return nil, err
	}

	// 2. Вычисляем ключ кэша
	key := cacheKey(query)

	// 3. Проверяем кэш, если refresh не форсирован. Попадание считается
	// успешным выполнением, но латентность удаленных вызовов не трогает.
	if !forceRefresh {
		if cached, ok := uc.cache.Get(key); ok {
			uc.stats.RecordCacheHit(query.ID, len(cached.Issues))
			snapshot, _ := uc.stats.Get(query.ID)
			return &domain.ExecutionResult{
				Query:     query,
				Issues:    cached.Issues,
				Total:     cached.Total,
				FromCache: true,
				Duration:  time.Since(start),
				FetchedAt: cached.StoredAt,
				Stats:     snapshot,
			}, nil
		}
	}

	if uc.search == nil {
		return nil, domain.NewRemoteError(domain.RemoteKindNetwork, "jira client is not configured", nil)
	}

	// 4. Обращаемся к удаленному API
	result, err := uc.search.SearchIssues(ctx, query.JQL, query.MaxResults)
	latency := time.Since(start)

	// 5. Отказ фиксируется в статистике и не трогает кэш
	if err != nil {
		uc.stats.Record(query.ID, false, latency, 0)
		return nil, err
	}

	// 6. Успех: перезаписываем кэш и обновляем статистику
	uc.cache.Put(key, &domain.CachedResult{
		QueryID: query.ID,
		Issues:  result.Issues,
		Total:   result.Total,
	})
	uc.stats.Record(query.ID, true, latency, len(result.Issues))

	snapshot, _ := uc.stats.Get(query.ID)
	return &domain.ExecutionResult{
		Query:     query,
		Issues:    result.Issues,
		Total:     result.Total,
		FromCache: false,
		Duration:  latency,
		FetchedAt: time.Now(),
		Stats:     snapshot,
	}, nil
}

// CacheInfo возвращает диагностическую сводку кэша.
func (uc *ExecutorUseCase) CacheInfo(ctx context.Context) (domain.CacheInfo, error) {
	return uc.cache.Info(), nil
}

// InvalidateCache удаляет записи кэша одного запроса, no-op для
// неизвестного id.
func (uc *ExecutorUseCase) InvalidateCache(ctx context.Context, queryID string) error {
	uc.cache.InvalidateQuery(queryID)
	return nil
}

// ClearCache удаляет все записи кэша.
func (uc *ExecutorUseCase) ClearCache(ctx context.Context) error {
	uc.cache.Clear()
	return nil
}

// cacheKey строит ключ кэша из id, хэша JQL и лимита результатов:
// смена текста или лимита в определении не должна отдавать старый слот.
func cacheKey(query *domain.QueryDefinition) string {
	h := fnv.New64a()
	h.Write([]byte(query.JQL))
	return fmt.Sprintf("%s_%x_%d", query.ID, h.Sum64(), query.MaxResults)
}
