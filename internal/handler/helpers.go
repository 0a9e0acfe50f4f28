package handler

import (
	"net/http"
	"time"

	"jira-dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

// Вспомогательные функции преобразования доменных моделей в API модели

type queryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	JQL         string    `json:"jql"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	MaxResults  int       `json:"max_results"`
	CreatedAt   time.Time `json:"created_at"`
	Predefined  bool      `json:"predefined"`
}

func toQueryResponse(def *domain.QueryDefinition) queryResponse {
	return queryResponse{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		JQL:         def.JQL,
		Category:    string(def.Category),
		Tags:        def.Tags,
		MaxResults:  def.MaxResults,
		CreatedAt:   def.CreatedAt,
		Predefined:  def.Predefined,
	}
}

func toQueryResponses(defs []*domain.QueryDefinition) []queryResponse {
	result := make([]queryResponse, len(defs))
	for i, def := range defs {
		result[i] = toQueryResponse(def)
	}
	return result
}

type statsResponse struct {
	QueryID          string    `json:"query_id"`
	ExecutionCount   int64     `json:"execution_count"`
	SuccessCount     int64     `json:"success_count"`
	FailureCount     int64     `json:"failure_count"`
	CacheHits        int64     `json:"cache_hits"`
	SuccessRate      float64   `json:"success_rate"`
	LastLatencyMs    float64   `json:"last_latency_ms"`
	AverageLatencyMs float64   `json:"average_latency_ms"`
	LastResultCount  int       `json:"last_result_count"`
	LastExecutedAt   time.Time `json:"last_executed_at"`
}

func toStatsResponse(stats domain.ExecutionStats) statsResponse {
	return statsResponse{
		QueryID:          stats.QueryID,
		ExecutionCount:   stats.ExecutionCount,
		SuccessCount:     stats.SuccessCount,
		FailureCount:     stats.FailureCount,
		CacheHits:        stats.CacheHits,
		SuccessRate:      stats.SuccessRate(),
		LastLatencyMs:    durationMs(stats.LastLatency),
		AverageLatencyMs: durationMs(stats.AverageLatency),
		LastResultCount:  stats.LastResultCount,
		LastExecutedAt:   stats.LastExecutedAt,
	}
}

type executionResponse struct {
	QueryID         string         `json:"query_id"`
	FromCache       bool           `json:"from_cache"`
	Count           int            `json:"count"`
	Total           int            `json:"total"`
	ExecutionTimeMs float64        `json:"execution_time_ms"`
	FetchedAt       time.Time      `json:"fetched_at"`
	Issues          []domain.Issue `json:"issues"`
	Stats           statsResponse  `json:"stats"`
}

func toExecutionResponse(result *domain.ExecutionResult) executionResponse {
	return executionResponse{
		QueryID:         result.Query.ID,
		FromCache:       result.FromCache,
		Count:           len(result.Issues),
		Total:           result.Total,
		ExecutionTimeMs: durationMs(result.Duration),
		FetchedAt:       result.FetchedAt,
		Issues:          result.Issues,
		Stats:           toStatsResponse(result.Stats),
	}
}

type cacheEntryResponse struct {
	Key        string  `json:"key"`
	QueryID    string  `json:"query_id"`
	AgeSeconds float64 `json:"age_seconds"`
	IssueCount int     `json:"issue_count"`
}

type cacheInfoResponse struct {
	Entries      int                  `json:"entries"`
	CachedIssues int                  `json:"cached_issues"`
	TTLMinutes   float64              `json:"ttl_minutes"`
	EntryAges    []cacheEntryResponse `json:"entry_ages,omitempty"`
}

func toCacheInfoResponse(info domain.CacheInfo) cacheInfoResponse {
	response := cacheInfoResponse{
		Entries:      info.Entries,
		CachedIssues: info.CachedIssues,
		TTLMinutes:   info.TTL.Minutes(),
	}
	for _, entry := range info.EntryAges {
		response.EntryAges = append(response.EntryAges, cacheEntryResponse{
			Key:        entry.Key,
			QueryID:    entry.QueryID,
			AgeSeconds: entry.Age.Seconds(),
			IssueCount: entry.IssueCount,
		})
	}
	return response
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{Code: code, Message: message},
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrDuplicateQueryID:
		return http.StatusConflict

	// Not Found errors (404)
	case domain.ErrQueryNotFound, domain.ErrStatsNotFound:
		return http.StatusNotFound

	// Forbidden (403) - предопределенный набор защищен
	case domain.ErrProtectedQuery:
		return http.StatusForbidden

	// Bad Request errors (400) - валидация
	case domain.ErrEmptyQueryName, domain.ErrEmptyJQL,
		domain.ErrForbiddenKeyword, domain.ErrSQLSyntax,
		domain.ErrInvalidMaxResults, domain.ErrInvalidCategory:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError единообразно отображает domain ошибки в ответ.
// Отказ удаленного API отдается как 502 с его причиной.
func respondDomainError(c echo.Context, err error) error {
	if remote, ok := domain.AsRemoteError(err); ok {
		return c.JSON(http.StatusBadGateway, toErrorResponse("REMOTE_FAILURE", remote.Reason))
	}
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
}
