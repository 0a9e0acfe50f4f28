package usecase_test

import (
	"context"
	"testing"
	"time"

	"jira-dashboard-service/internal/domain"
	"jira-dashboard-service/internal/repository"
	"jira-dashboard-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearchClient struct {
	mock.Mock
}

func (m *mockSearchClient) SearchIssues(ctx context.Context, jql string, maxResults int) (*domain.SearchResult, error) {
	args := m.Called(ctx, jql, maxResults)
	if result := args.Get(0); result != nil {
		return result.(*domain.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type executorFixture struct {
	repo    *repository.QueryRepository
	cache   *repository.MemoryCacheStore
	tracker *repository.StatsTracker
	search  *mockSearchClient
	uc      domain.ExecutorUseCase
}

func newExecutorFixture(ttl time.Duration) *executorFixture {
	repo := repository.NewQueryRepository([]*domain.QueryDefinition{
		{
			ID:         "pending",
			Name:       "Pending",
			JQL:        "status in (new, todo)",
			Category:   domain.CategoryBasic,
			MaxResults: 50,
		},
	})
	cache := repository.NewMemoryCacheStore(ttl)
	tracker := repository.NewStatsTracker()
	search := &mockSearchClient{}

	return &executorFixture{
		repo:    repo,
		cache:   cache,
		tracker: tracker,
		search:  search,
		uc:      usecase.NewExecutorUseCase(repo, cache, tracker, search),
	}
}

func searchResult(keys ...string) *domain.SearchResult {
	issues := make([]domain.Issue, len(keys))
	for i, key := range keys {
		issues[i] = domain.Issue{Key: key, Summary: "issue " + key}
	}
	return &domain.SearchResult{Issues: issues, Total: len(issues)}
}

func TestExecutor_FirstExecution_FetchesRemote(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(searchResult("PRJ-1", "PRJ-2"), nil)

	result, err := f.uc.Execute(ctx, "pending", false)

	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Len(t, result.Issues, 2)
	assert.Equal(t, int64(1), result.Stats.ExecutionCount)
	assert.Equal(t, int64(1), result.Stats.SuccessCount)
	f.search.AssertExpectations(t)
}

func TestExecutor_SecondExecution_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(searchResult("PRJ-1", "PRJ-2"), nil)

	first, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	second, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, first.Issues, second.Issues)
	// Cache hit counts as a successful execution
	assert.Equal(t, int64(2), second.Stats.ExecutionCount)
	assert.Equal(t, int64(2), second.Stats.SuccessCount)
	assert.Equal(t, int64(1), second.Stats.CacheHits)
	// No second remote call
	f.search.AssertNumberOfCalls(t, "SearchIssues", 1)
}

func TestExecutor_ForceRefresh_BypassesCache(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(searchResult("PRJ-1"), nil)

	_, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	result, err := f.uc.Execute(ctx, "pending", true)
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	f.search.AssertNumberOfCalls(t, "SearchIssues", 2)
}

func TestExecutor_ExpiredCache_FetchesAgain(t *testing.T) {
	ctx := context.Background()
	// Нулевой TTL: любая запись устаревает немедленно
	f := newExecutorFixture(0)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(searchResult("PRJ-1"), nil)

	_, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	result, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	f.search.AssertNumberOfCalls(t, "SearchIssues", 2)
}

func TestExecutor_RemoteFailure_ColdCache(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	authErr := domain.NewRemoteError(domain.RemoteKindAuth, "401 Unauthorized", nil)
	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(nil, authErr)

	result, err := f.uc.Execute(ctx, "pending", false)

	assert.Nil(t, result)
	remote, ok := domain.AsRemoteError(err)
	require.True(t, ok)
	assert.Contains(t, remote.Reason, "401")

	stats, _ := f.tracker.Get("pending")
	assert.Equal(t, int64(1), stats.ExecutionCount)
	assert.Equal(t, int64(1), stats.FailureCount)

	// A failure never populates the cache
	info := f.cache.Info()
	assert.Equal(t, 0, info.Entries)
}

func TestExecutor_RemoteFailure_KeepsCachedResult(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).
		Return(searchResult("PRJ-1", "PRJ-2"), nil).Once()
	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).
		Return(nil, domain.NewRemoteError(domain.RemoteKindNetwork, "connection refused", nil))

	_, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	// Forced refresh fails, but must not evict the cached success
	_, err = f.uc.Execute(ctx, "pending", true)
	require.Error(t, err)

	result, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Len(t, result.Issues, 2)

	stats, _ := f.tracker.Get("pending")
	assert.Equal(t, int64(3), stats.ExecutionCount)
	assert.Equal(t, int64(2), stats.SuccessCount)
	assert.Equal(t, int64(1), stats.FailureCount)
}

func TestExecutor_UnknownQuery(t *testing.T) {
	f := newExecutorFixture(5 * time.Minute)

	_, err := f.uc.Execute(context.Background(), "ghost", false)
	assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	f.search.AssertNumberOfCalls(t, "SearchIssues", 0)
}

func TestExecutor_WithoutSearchClient(t *testing.T) {
	repo := repository.NewQueryRepository([]*domain.QueryDefinition{
		{ID: "pending", Name: "Pending", JQL: "status = New", Category: domain.CategoryBasic, MaxResults: 50},
	})
	uc := usecase.NewExecutorUseCase(repo, repository.NewMemoryCacheStore(time.Minute), repository.NewStatsTracker(), nil)

	_, err := uc.Execute(context.Background(), "pending", false)

	remote, ok := domain.AsRemoteError(err)
	require.True(t, ok)
	assert.Contains(t, remote.Reason, "not configured")
}

func TestExecutor_CacheManagement(t *testing.T) {
	ctx := context.Background()
	f := newExecutorFixture(5 * time.Minute)

	f.search.On("SearchIssues", ctx, "status in (new, todo)", 50).Return(searchResult("PRJ-1"), nil)

	_, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)

	info, err := f.uc.CacheInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Entries)
	assert.Equal(t, 1, info.CachedIssues)

	require.NoError(t, f.uc.InvalidateCache(ctx, "pending"))
	info, _ = f.uc.CacheInfo(ctx)
	assert.Equal(t, 0, info.Entries)

	// После инвалидации выполнение снова идет в удаленный API
	result, err := f.uc.Execute(ctx, "pending", false)
	require.NoError(t, err)
	assert.False(t, result.FromCache)

	require.NoError(t, f.uc.ClearCache(ctx))
	info, _ = f.uc.CacheInfo(ctx)
	assert.Equal(t, 0, info.Entries)
}
