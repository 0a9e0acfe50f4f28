package repository

import (
	"context"
	"sort"
	"sync"

	"jira-dashboard-service/internal/domain"
)

// QueryRepository реализует каталог запросов в памяти.
// Предопределенный набор защищен от перезаписи и удаления.
type QueryRepository struct {
	mu      sync.RWMutex
	queries map[string]*domain.QueryDefinition
}

// NewQueryRepository создает каталог, засеянный предопределенными запросами.
func NewQueryRepository(predefined []*domain.QueryDefinition) *QueryRepository {
	repo := &QueryRepository{
		queries: make(map[string]*domain.QueryDefinition, len(predefined)),
	}
	for _, def := range predefined {
		def.Predefined = true
		repo.queries[def.ID] = def
	}
	return repo
}

// Register добавляет пользовательское определение в каталог.
// Коллизия id с любым существующим определением отклоняется.
func (r *QueryRepository) Register(ctx context.Context, def *domain.QueryDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.queries[def.ID]; exists {
		return domain.ErrDuplicateQueryID
	}
	r.queries[def.ID] = def
	return nil
}

// GetByID возвращает определение по id.
func (r *QueryRepository) GetByID(ctx context.Context, id string) (*domain.QueryDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.queries[id]
	if !exists {
		return nil, domain.ErrQueryNotFound
	}
	return def, nil
}

// List возвращает материализованный срез определений, прошедших фильтр,
// отсортированный по (категория, id) для стабильного порядка.
func (r *QueryRepository) List(ctx context.Context, filter domain.QueryFilter) ([]*domain.QueryDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.QueryDefinition, 0, len(r.queries))
	for _, def := range r.queries {
		if filter.Matches(def) {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return categoryRank(result[i].Category) < categoryRank(result[j].Category)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Remove удаляет пользовательское определение.
// Предопределенные определения защищены от удаления.
func (r *QueryRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, exists := r.queries[id]
	if !exists {
		return domain.ErrQueryNotFound
	}
	if def.Predefined {
		return domain.ErrProtectedQuery
	}
	delete(r.queries, id)
	return nil
}

// Categories возвращает категории, представленные в каталоге.
func (r *QueryRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.Category]bool)
	for _, def := range r.queries {
		seen[def.Category] = true
	}

	categories := make([]domain.Category, 0, len(seen))
	for _, category := range domain.AllCategories {
		if seen[category] {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Tags возвращает отсортированное объединение тегов всех определений.
func (r *QueryRepository) Tags(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range r.queries {
		for _, tag := range def.Tags {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// CountByCategory возвращает число определений в каждой категории.
func (r *QueryRepository) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.Category]int)
	for _, def := range r.queries {
		counts[def.Category]++
	}
	return counts, nil
}

func categoryRank(c domain.Category) int {
	for i, known := range domain.AllCategories {
		if c == known {
			return i
		}
	}
	return len(domain.AllCategories)
}
