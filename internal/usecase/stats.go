package usecase

import (
	"context"

	"jira-dashboard-service/internal/domain"
)

// StatsUseCase реализует бизнес-логику статистики выполнения.
type StatsUseCase struct {
	stats domain.StatsTracker
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
func NewStatsUseCase(stats domain.StatsTracker) domain.StatsUseCase {
	return &StatsUseCase{stats: stats}
}

// GetStats возвращает статистику одного запроса. Статистика появляется
// лениво при первом выполнении.
func (uc *StatsUseCase) GetStats(ctx context.Context, queryID string) (domain.ExecutionStats, error) {
	stats, exists := uc.stats.Get(queryID)
	if !exists {
		return domain.ExecutionStats{}, domain.ErrStatsNotFound
	}
	return stats, nil
}

// AllStats возвращает статистику всех выполнявшихся запросов.
func (uc *StatsUseCase) AllStats(ctx context.Context) ([]domain.ExecutionStats, error) {
	return uc.stats.All(), nil
}

// ClearStats сбрасывает статистику одного запроса.
func (uc *StatsUseCase) ClearStats(ctx context.Context, queryID string) error {
	uc.stats.Clear(queryID)
	return nil
}

// ClearAllStats сбрасывает всю статистику.
func (uc *StatsUseCase) ClearAllStats(ctx context.Context) error {
	uc.stats.ClearAll()
	return nil
}
