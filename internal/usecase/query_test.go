package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"jira-dashboard-service/internal/domain"
	"jira-dashboard-service/internal/repository"
	"jira-dashboard-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queryFixture struct {
	repo    *repository.QueryRepository
	cache   *repository.MemoryCacheStore
	tracker *repository.StatsTracker
	search  *mockSearchClient
	uc      domain.QueryUseCase
}

func newQueryFixture() *queryFixture {
	repo := repository.NewQueryRepository([]*domain.QueryDefinition{
		{
			ID:         "pending",
			Name:       "Pending",
			JQL:        "status in (new, todo)",
			Category:   domain.CategoryBasic,
			MaxResults: 50,
		},
	})
	cache := repository.NewMemoryCacheStore(5 * time.Minute)
	tracker := repository.NewStatsTracker()
	search := &mockSearchClient{}

	return &queryFixture{
		repo:    repo,
		cache:   cache,
		tracker: tracker,
		search:  search,
		uc:      usecase.NewQueryUseCase(repo, cache, tracker, search),
	}
}

func TestQueryUseCase_CreateQuery(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	def, err := f.uc.CreateQuery(ctx, domain.CreateQueryInput{
		Name:        "  My Bugs  ",
		Description: "Bugs assigned to me",
		JQL:         "issuetype = Bug AND assignee = currentUser()",
		Tags:        []string{"bugs"},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(def.ID, "custom_"))
	assert.Equal(t, "My Bugs", def.Name)
	assert.Equal(t, domain.CategoryCustom, def.Category)
	assert.Equal(t, domain.DefaultMaxResults, def.MaxResults)
	assert.False(t, def.Predefined)
	assert.False(t, def.CreatedAt.IsZero())

	got, err := f.repo.GetByID(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestQueryUseCase_CreateQuery_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	first, err := f.uc.CreateQuery(ctx, domain.CreateQueryInput{Name: "One", JQL: "labels = a"})
	require.NoError(t, err)
	second, err := f.uc.CreateQuery(ctx, domain.CreateQueryInput{Name: "Two", JQL: "labels = b"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestQueryUseCase_CreateQuery_Validation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		input    domain.CreateQueryInput
		expected error
	}{
		{"Empty name", domain.CreateQueryInput{Name: "   ", JQL: "labels = a"}, domain.ErrEmptyQueryName},
		{"Empty JQL", domain.CreateQueryInput{Name: "Q", JQL: "  "}, domain.ErrEmptyJQL},
		{"Forbidden keyword", domain.CreateQueryInput{Name: "Q", JQL: "DROP everything"}, domain.ErrForbiddenKeyword},
		{"SQL syntax", domain.CreateQueryInput{Name: "Q", JQL: "SELECT * FROM issues"}, domain.ErrSQLSyntax},
		{"Negative max results", domain.CreateQueryInput{Name: "Q", JQL: "labels = a", MaxResults: -1}, domain.ErrInvalidMaxResults},
		{"Unknown category", domain.CreateQueryInput{Name: "Q", JQL: "labels = a", Category: "bogus"}, domain.ErrInvalidCategory},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newQueryFixture()

			_, err := f.uc.CreateQuery(ctx, tc.input)
			assert.ErrorIs(t, err, tc.expected)

			// Rejected input never lands in the catalog
			queries, listErr := f.repo.List(ctx, domain.QueryFilter{Category: domain.CategoryCustom})
			require.NoError(t, listErr)
			assert.Empty(t, queries)
		})
	}
}

func TestQueryUseCase_CreateQuery_KeywordWordBoundary(t *testing.T) {
	f := newQueryFixture()

	// "updated" contains UPDATE as a substring but is a legal JQL field
	def, err := f.uc.CreateQuery(context.Background(), domain.CreateQueryInput{
		Name: "Recently touched",
		JQL:  "assignee = currentUser() AND updated >= -1d",
	})

	require.NoError(t, err)
	assert.NotNil(t, def)
}

func TestQueryUseCase_RemoveQuery_ClearsCacheAndStats(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	def, err := f.uc.CreateQuery(ctx, domain.CreateQueryInput{Name: "Mine", JQL: "labels = mine"})
	require.NoError(t, err)

	f.cache.Put(def.ID+"_a_100", &domain.CachedResult{QueryID: def.ID, Total: 1})
	f.tracker.Record(def.ID, true, 10*time.Millisecond, 1)

	require.NoError(t, f.uc.RemoveQuery(ctx, def.ID))

	_, err = f.repo.GetByID(ctx, def.ID)
	assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	assert.Equal(t, 0, f.cache.Info().Entries)
	_, exists := f.tracker.Get(def.ID)
	assert.False(t, exists)
}

func TestQueryUseCase_RemoveQuery_Predefined(t *testing.T) {
	f := newQueryFixture()

	err := f.uc.RemoveQuery(context.Background(), "pending")
	assert.ErrorIs(t, err, domain.ErrProtectedQuery)
}

func TestQueryUseCase_ValidateJQL_ProbesRemote(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.search.On("SearchIssues", ctx, "labels = a", 1).Return(searchResult(), nil)

	require.NoError(t, f.uc.ValidateJQL(ctx, "labels = a"))
	f.search.AssertExpectations(t)
}

func TestQueryUseCase_ValidateJQL_RemoteRejection(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	queryErr := domain.NewRemoteError(domain.RemoteKindQuery, `400 Bad Request: field "labelz" does not exist`, nil)
	f.search.On("SearchIssues", ctx, "labelz = a", 1).Return(nil, queryErr)

	err := f.uc.ValidateJQL(ctx, "labelz = a")

	remote, ok := domain.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RemoteKindQuery, remote.Kind)
}

func TestQueryUseCase_ValidateJQL_LocalOnly(t *testing.T) {
	uc := usecase.NewQueryUseCase(
		repository.NewQueryRepository(nil),
		repository.NewMemoryCacheStore(time.Minute),
		repository.NewStatsTracker(),
		nil,
	)

	// Without a client only the local checks run
	assert.NoError(t, uc.ValidateJQL(context.Background(), "labels = a"))
	assert.ErrorIs(t, uc.ValidateJQL(context.Background(), "TRUNCATE issues"), domain.ErrForbiddenKeyword)
}

func TestQueryUseCase_Catalog(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	_, err := f.uc.CreateQuery(ctx, domain.CreateQueryInput{Name: "Mine", JQL: "labels = mine", Tags: []string{"mine"}})
	require.NoError(t, err)

	catalog, err := f.uc.Catalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.Total)
	assert.Equal(t, []domain.Category{domain.CategoryBasic, domain.CategoryCustom}, catalog.Categories)
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryBasic:  1,
		domain.CategoryCustom: 1,
	}, catalog.Counts)
	assert.Contains(t, catalog.Tags, "mine")
}
