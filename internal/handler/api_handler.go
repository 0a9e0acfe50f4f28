package handler

import (
	"jira-dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*QueryHandler
	*ExecuteHandler
	*StatsHandler
}

func NewAPIHandler(
	queryUseCase domain.QueryUseCase,
	executorUseCase domain.ExecutorUseCase,
	statsUseCase domain.StatsUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		QueryHandler:   NewQueryHandler(queryUseCase, logger),
		ExecuteHandler: NewExecuteHandler(executorUseCase, logger),
		StatsHandler:   NewStatsHandler(statsUseCase, logger),
	}
}

// RegisterRoutes вешает маршруты API на echo.
func RegisterRoutes(e *echo.Echo, h *APIHandler) {
	api := e.Group("/api")

	api.GET("/queries", h.ListQueries)
	api.POST("/queries", h.CreateQuery)
	api.POST("/queries/validate", h.ValidateQuery)
	api.GET("/queries/:id", h.GetQuery)
	api.DELETE("/queries/:id", h.RemoveQuery)
	api.POST("/queries/:id/execute", h.ExecuteQuery)

	api.GET("/catalog", h.Catalog)

	api.GET("/stats", h.AllStats)
	api.DELETE("/stats", h.ClearAllStats)
	api.GET("/stats/:id", h.GetStats)
	api.DELETE("/stats/:id", h.ClearStats)

	api.GET("/cache", h.CacheInfo)
	api.DELETE("/cache", h.ClearCache)
	api.DELETE("/cache/:id", h.InvalidateCache)
}
