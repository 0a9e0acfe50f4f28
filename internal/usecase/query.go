package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"jira-dashboard-service/internal/domain"

	"github.com/google/uuid"
)

// Мутационные ключевые слова, запрещенные в JQL. Сопоставление идет по
// границам слов: substring-проверка отбраковывала бы корректный JQL
// вида "updated >= -1d".
var forbiddenKeywordPattern = regexp.MustCompile(`(?i)\b(DELETE|DROP|UPDATE|INSERT|ALTER|TRUNCATE)\b`)

// SQL-синтаксис, не встречающийся в корректном JQL.
var sqlKeywordPattern = regexp.MustCompile(`(?i)\b(SELECT|FROM|WHERE|GROUP\s+BY)\b`)

// QueryUseCase реализует бизнес-логику каталога запросов.
type QueryUseCase struct {
	queryRepo domain.QueryRepository
	cache     domain.CacheStore
	stats     domain.StatsTracker
	search    domain.SearchClient
}

// NewQueryUseCase создает новый экземпляр QueryUseCase.
// search может быть nil, тогда удаленная проверка JQL пропускается.
func NewQueryUseCase(
	queryRepo domain.QueryRepository,
	cache domain.CacheStore,
	stats domain.StatsTracker,
	search domain.SearchClient,
) domain.QueryUseCase {
	return &QueryUseCase{
		queryRepo: queryRepo,
		cache:     cache,
		stats:     stats,
		search:    search,
	}
}

// ListQueries возвращает определения, прошедшие фильтр.
func (uc *QueryUseCase) ListQueries(ctx context.Context, filter domain.QueryFilter) ([]*domain.QueryDefinition, error) {
	return uc.queryRepo.List(ctx, filter)
}

// GetQuery возвращает определение по id.
func (uc *QueryUseCase) GetQuery(ctx context.Context, id string) (*domain.QueryDefinition, error) {
	return uc.queryRepo.GetByID(ctx, id)
}

// CreateQuery валидирует и регистрирует пользовательский запрос.
// Некорректный JQL отклоняется на создании, а не на выполнении.
func (uc *QueryUseCase) CreateQuery(ctx context.Context, input domain.CreateQueryInput) (*domain.QueryDefinition, error) {
	// 1. Валидация входных данных
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrEmptyQueryName
	}
	if err := validateJQLText(input.JQL); err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryCustom
	}
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	maxResults := input.MaxResults
	if maxResults == 0 {
		maxResults = domain.DefaultMaxResults
	}
	if maxResults < 0 {
		return nil, domain.ErrInvalidMaxResults
	}

	// 2. Собираем определение с уникальным id
	def := &domain.QueryDefinition{
		ID:          newCustomID(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		JQL:         strings.TrimSpace(input.JQL),
		Category:    category,
		Tags:        input.Tags,
		MaxResults:  maxResults,
		CreatedAt:   time.Now(),
	}

	// 3. Регистрируем в каталоге
	if err := uc.queryRepo.Register(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// RemoveQuery удаляет пользовательский запрос вместе со связанными
// записями кэша и статистикой.
func (uc *QueryUseCase) RemoveQuery(ctx context.Context, id string) error {
	if err := uc.queryRepo.Remove(ctx, id); err != nil {
		return err
	}

	uc.cache.InvalidateQuery(id)
	uc.stats.Clear(id)
	return nil
}

// ValidateJQL проверяет текст запроса: пустоту, запрещенные ключевые
// слова, а при наличии клиента — синтаксис на стороне Jira пробным
// поиском с одним результатом.
func (uc *QueryUseCase) ValidateJQL(ctx context.Context, jql string) error {
	if err := validateJQLText(jql); err != nil {
		return err
	}

	if uc.search != nil {
		if _, err := uc.search.SearchIssues(ctx, jql, 1); err != nil {
			return err
		}
	}
	return nil
}

// Catalog возвращает сводку каталога для explorer-эндпоинта.
func (uc *QueryUseCase) Catalog(ctx context.Context) (*domain.CatalogInfo, error) {
	categories, err := uc.queryRepo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := uc.queryRepo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.queryRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	return &domain.CatalogInfo{
		Categories: categories,
		Tags:       tags,
		Counts:     counts,
		Total:      total,
	}, nil
}

func validateJQLText(jql string) error {
	if strings.TrimSpace(jql) == "" {
		return domain.ErrEmptyJQL
	}
	if forbiddenKeywordPattern.MatchString(jql) {
		return domain.ErrForbiddenKeyword
	}
	if sqlKeywordPattern.MatchString(jql) {
		return domain.ErrSQLSyntax
	}
	return nil
}

// newCustomID строит id пользовательского запроса. Суффикс из uuid
// исключает коллизию при создании нескольких запросов в одну секунду.
func newCustomID() string {
	return "custom_" + time.Now().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}
