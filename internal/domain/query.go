package domain

import (
	"context"
	"strings"
	"time"
)

// Category группирует запросы каталога. Используется только для навигации
// и фильтрации, на выполнение не влияет.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryManagement  Category = "management"
	CategoryMaintenance Category = "maintenance"
	CategoryProject     Category = "project"
	CategoryAnalysis    Category = "analysis"
	CategoryCustom      Category = "custom"
)

// AllCategories перечисляет допустимые категории в порядке отображения.
var AllCategories = []Category{
	CategoryBasic,
	CategoryManagement,
	CategoryMaintenance,
	CategoryProject,
	CategoryAnalysis,
	CategoryCustom,
}

// Valid проверяет, что категория входит в фиксированный набор.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultMaxResults — лимит результатов, если он не задан в определении.
const DefaultMaxResults = 100

// QueryDefinition представляет именованный JQL-запрос в каталоге.
// После создания определение не изменяется.
type QueryDefinition struct {
	ID          string
	Name        string
	Description string
	JQL         string
	Category    Category
	Tags        []string
	MaxResults  int
	CreatedAt   time.Time
	Predefined  bool
}

// HasTag проверяет наличие тега (без учета регистра).
func (q *QueryDefinition) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// QueryFilter описывает фильтры списка запросов. Заданные поля
// комбинируются по AND, пустое поле означает отсутствие ограничения.
type QueryFilter struct {
	Category Category
	Tag      string
	Search   string
}

// Matches проверяет, проходит ли определение через фильтр. Текстовый поиск
// ведется без учета регистра по имени, описанию и тегам.
func (f QueryFilter) Matches(q *QueryDefinition) bool {
	if f.Category != "" && q.Category != f.Category {
		return false
	}
	if f.Tag != "" && !q.HasTag(f.Tag) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(q.Name), term) &&
			!strings.Contains(strings.ToLower(q.Description), term) &&
			!tagsContain(q.Tags, term) {
			return false
		}
	}
	return true
}

func tagsContain(tags []string, term string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// QueryRepository определяет контракт каталога запросов.
type QueryRepository interface {
	Register(ctx context.Context, def *QueryDefinition) error
	GetByID(ctx context.Context, id string) (*QueryDefinition, error)
	List(ctx context.Context, filter QueryFilter) ([]*QueryDefinition, error)
	Remove(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]Category, error)
	Tags(ctx context.Context) ([]string, error)
	CountByCategory(ctx context.Context) (map[Category]int, error)
}
