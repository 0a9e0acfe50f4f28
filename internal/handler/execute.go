package handler

import (
	"net/http"

	"jira-dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ExecuteHandler обрабатывает HTTP-запросы выполнения и кэша
type ExecuteHandler struct {
	*BaseHandler
	executorUseCase domain.ExecutorUseCase
}

// NewExecuteHandler создает новый экземпляр ExecuteHandler
func NewExecuteHandler(executorUseCase domain.ExecutorUseCase, logger *logrus.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		BaseHandler:     NewBaseHandler(logger),
		executorUseCase: executorUseCase,
	}
}

// ExecuteQuery обрабатывает выполнение запроса каталога.
// Параметр force=true принудительно обходит кэш.
func (h *ExecuteHandler) ExecuteQuery(c echo.Context) error {
	queryID := c.Param("id")
	forceRefresh := c.QueryParam("force") == "true"

	logEntry := h.logRequest(c, "execute_query").WithFields(logrus.Fields{
		"query_id": queryID,
		"force":    forceRefresh,
	})
	logEntry.Info("Executing query")

	result, err := h.executorUseCase.Execute(c.Request().Context(), queryID, forceRefresh)
	if err != nil {
		logEntry.WithError(err).Error("Failed to execute query")
		return respondDomainError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"from_cache": result.FromCache,
		"count":      len(result.Issues),
	}).Info("Query executed successfully")
	return c.JSON(http.StatusOK, toExecutionResponse(result))
}

// CacheInfo обрабатывает GET запрос диагностики кэша
func (h *ExecuteHandler) CacheInfo(c echo.Context) error {
	logEntry := h.logRequest(c, "cache_info")

	info, err := h.executorUseCase.CacheInfo(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to get cache info")
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, toCacheInfoResponse(info))
}

// InvalidateCache обрабатывает удаление записей кэша одного запроса
func (h *ExecuteHandler) InvalidateCache(c echo.Context) error {
	queryID := c.Param("id")
	logEntry := h.logRequest(c, "invalidate_cache").WithField("query_id", queryID)

	if err := h.executorUseCase.InvalidateCache(c.Request().Context(), queryID); err != nil {
		logEntry.WithError(err).Error("Failed to invalidate cache")
		return respondDomainError(c, err)
	}

	logEntry.Info("Cache invalidated")
	return c.NoContent(http.StatusNoContent)
}

// ClearCache обрабатывает полную очистку кэша
func (h *ExecuteHandler) ClearCache(c echo.Context) error {
	logEntry := h.logRequest(c, "clear_cache")

	if err := h.executorUseCase.ClearCache(c.Request().Context()); err != nil {
		logEntry.WithError(err).Error("Failed to clear cache")
		return respondDomainError(c, err)
	}

	logEntry.Info("Cache cleared")
	return c.NoContent(http.StatusNoContent)
}
