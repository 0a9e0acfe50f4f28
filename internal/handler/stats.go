package handler

import (
	"net/http"

	"jira-dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatsHandler обрабатывает HTTP-запросы статистики выполнения.
type StatsHandler struct {
	*BaseHandler
	statsUseCase domain.StatsUseCase
}

// NewStatsHandler создает новый экземпляр StatsHandler.
func NewStatsHandler(statsUseCase domain.StatsUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsUseCase: statsUseCase,
	}
}

// AllStats обрабатывает GET запрос статистики всех запросов.
func (h *StatsHandler) AllStats(c echo.Context) error {
	logEntry := h.logRequest(c, "all_stats")

	all, err := h.statsUseCase.AllStats(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to get execution stats")
		return respondDomainError(c, err)
	}

	stats := make([]statsResponse, len(all))
	for i, s := range all {
		stats[i] = toStatsResponse(s)
	}

	logEntry.WithField("stats_count", len(stats)).Info("Execution stats retrieved")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats": stats,
	})
}

// GetStats обрабатывает GET запрос статистики одного запроса.
func (h *StatsHandler) GetStats(c echo.Context) error {
	queryID := c.Param("id")
	logEntry := h.logRequest(c, "get_stats").WithField("query_id", queryID)

	stats, err := h.statsUseCase.GetStats(c.Request().Context(), queryID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get execution stats")
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats": toStatsResponse(stats),
	})
}

// ClearStats обрабатывает сброс статистики одного запроса.
func (h *StatsHandler) ClearStats(c echo.Context) error {
	queryID := c.Param("id")
	logEntry := h.logRequest(c, "clear_stats").WithField("query_id", queryID)

	if err := h.statsUseCase.ClearStats(c.Request().Context(), queryID); err != nil {
		logEntry.WithError(err).Error("Failed to clear execution stats")
		return respondDomainError(c, err)
	}

	logEntry.Info("Execution stats cleared")
	return c.NoContent(http.StatusNoContent)
}

// ClearAllStats обрабатывает сброс всей статистики.
func (h *StatsHandler) ClearAllStats(c echo.Context) error {
	logEntry := h.logRequest(c, "clear_all_stats")

	if err := h.statsUseCase.ClearAllStats(c.Request().Context()); err != nil {
		logEntry.WithError(err).Error("Failed to clear execution stats")
		return respondDomainError(c, err)
	}

	logEntry.Info("All execution stats cleared")
	return c.NoContent(http.StatusNoContent)
}
