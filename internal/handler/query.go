package handler

import (
	"net/http"

	"jira-dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// QueryHandler обрабатывает HTTP-запросы каталога запросов
type QueryHandler struct {
	*BaseHandler
	queryUseCase domain.QueryUseCase
}

// NewQueryHandler создает новый экземпляр QueryHandler
func NewQueryHandler(queryUseCase domain.QueryUseCase, logger *logrus.Logger) *QueryHandler {
	return &QueryHandler{
		BaseHandler:  NewBaseHandler(logger),
		queryUseCase: queryUseCase,
	}
}

type createQueryRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=500"`
	JQL         string   `json:"jql" validate:"required"`
	Category    string   `json:"category" validate:"omitempty,oneof=basic management maintenance project analysis custom"`
	Tags        []string `json:"tags" validate:"dive,max=40"`
	MaxResults  int      `json:"max_results" validate:"omitempty,min=1,max=1000"`
}

type validateQueryRequest struct {
	JQL string `json:"jql" validate:"required"`
}

// ListQueries обрабатывает GET запрос списка с фильтрами
// category/tag/search (логическое AND)
func (h *QueryHandler) ListQueries(c echo.Context) error {
	filter := domain.QueryFilter{
		Category: domain.Category(c.QueryParam("category")),
		Tag:      c.QueryParam("tag"),
		Search:   c.QueryParam("search"),
	}

	logEntry := h.logRequest(c, "list_queries")

	queries, err := h.queryUseCase.ListQueries(c.Request().Context(), filter)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list queries")
		return respondDomainError(c, err)
	}

	logEntry.WithField("count", len(queries)).Info("Queries listed")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"queries": toQueryResponses(queries),
		"count":   len(queries),
	})
}

// GetQuery обрабатывает GET запрос одного определения
func (h *QueryHandler) GetQuery(c echo.Context) error {
	queryID := c.Param("id")
	logEntry := h.logRequest(c, "get_query").WithField("query_id", queryID)

	query, err := h.queryUseCase.GetQuery(c.Request().Context(), queryID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get query")
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query": toQueryResponse(query),
	})
}

// CreateQuery обрабатывает создание пользовательского запроса
func (h *QueryHandler) CreateQuery(c echo.Context) error {
	var req createQueryRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create query request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_query").WithFields(logrus.Fields{
		"name":     req.Name,
		"category": req.Category,
	})
	logEntry.Info("Creating query")

	query, err := h.queryUseCase.CreateQuery(c.Request().Context(), domain.CreateQueryInput{
		Name:        req.Name,
		Description: req.Description,
		JQL:         req.JQL,
		Category:    domain.Category(req.Category),
		Tags:        req.Tags,
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to create query")
		return respondDomainError(c, err)
	}

	logEntry.WithField("query_id", query.ID).Info("Query created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"query": toQueryResponse(query),
	})
}

// RemoveQuery обрабатывает удаление пользовательского запроса
func (h *QueryHandler) RemoveQuery(c echo.Context) error {
	queryID := c.Param("id")
	logEntry := h.logRequest(c, "remove_query").WithField("query_id", queryID)
	logEntry.Info("Removing query")

	if err := h.queryUseCase.RemoveQuery(c.Request().Context(), queryID); err != nil {
		logEntry.WithError(err).Warn("Failed to remove query")
		return respondDomainError(c, err)
	}

	logEntry.Info("Query removed successfully")
	return c.NoContent(http.StatusNoContent)
}

// ValidateQuery обрабатывает проверку JQL без сохранения
func (h *QueryHandler) ValidateQuery(c echo.Context) error {
	var req validateQueryRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind validate query request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "validate_query")

	if err := h.queryUseCase.ValidateJQL(c.Request().Context(), req.JQL); err != nil {
		logEntry.WithError(err).Warn("JQL validation failed")
		reason := err.Error()
		if remote, ok := domain.AsRemoteError(err); ok {
			reason = remote.Reason
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"valid": false,
			"error": reason,
		})
	}

	logEntry.Info("JQL validated")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":   true,
		"message": "jql is valid",
	})
}

// Catalog обрабатывает GET запрос сводки каталога
func (h *QueryHandler) Catalog(c echo.Context) error {
	logEntry := h.logRequest(c, "catalog")

	info, err := h.queryUseCase.Catalog(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to build catalog info")
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": info.Categories,
		"tags":       info.Tags,
		"counts":     info.Counts,
		"total":      info.Total,
	})
}
