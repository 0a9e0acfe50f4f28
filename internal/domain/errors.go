package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки (для бизнес-логики)
var (
	// Validation errors
	ErrEmptyQueryName    = errors.New("query name must not be empty")
	ErrEmptyJQL          = errors.New("jql text must not be empty")
	ErrForbiddenKeyword  = errors.New("jql contains forbidden keyword")
	ErrSQLSyntax         = errors.New("jql must not contain sql syntax")
	ErrInvalidMaxResults = errors.New("max results must be positive")
	ErrInvalidCategory   = errors.New("unknown query category")

	// Catalog errors
	ErrQueryNotFound    = errors.New("query not found")
	ErrDuplicateQueryID = errors.New("query id already exists")
	ErrProtectedQuery   = errors.New("predefined query is protected")

	// Stats errors
	ErrStatsNotFound = errors.New("no statistics recorded for query")
)

// Виды отказов удаленного поискового API.
const (
	RemoteKindAuth      = "auth"
	RemoteKindQuery     = "query"
	RemoteKindRateLimit = "ratelimit"
	RemoteKindNetwork   = "network"
	RemoteKindRemote    = "remote"
)

// RemoteExecutionError оборачивает отказ поискового API: авторизация,
// некорректный JQL на стороне Jira, сеть/таймаут, rate limit.
type RemoteExecutionError struct {
	Kind   string
	Reason string
	Err    error
}

func (e *RemoteExecutionError) Error() string {
	return fmt.Sprintf("remote execution failed (%s): %s", e.Kind, e.Reason)
}

func (e *RemoteExecutionError) Unwrap() error {
	return e.Err
}

// NewRemoteError создает RemoteExecutionError с человекочитаемой причиной.
func NewRemoteError(kind, reason string, err error) *RemoteExecutionError {
	return &RemoteExecutionError{Kind: kind, Reason: reason, Err: err}
}

// AsRemoteError извлекает RemoteExecutionError из цепочки ошибок.
func AsRemoteError(err error) (*RemoteExecutionError, bool) {
	var remote *RemoteExecutionError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}

// HTTPError для тела ответа об ошибке
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrEmptyQueryName:    {Code: "INVALID_NAME", Message: "query name must not be empty"},
	ErrEmptyJQL:          {Code: "INVALID_JQL", Message: "jql text must not be empty"},
	ErrForbiddenKeyword:  {Code: "FORBIDDEN_KEYWORD", Message: "jql contains a forbidden keyword"},
	ErrSQLSyntax:         {Code: "SQL_SYNTAX", Message: "jql must not contain sql syntax"},
	ErrInvalidMaxResults: {Code: "INVALID_MAX_RESULTS", Message: "max_results must be positive"},
	ErrInvalidCategory:   {Code: "INVALID_CATEGORY", Message: "unknown query category"},
	ErrQueryNotFound:     {Code: "NOT_FOUND", Message: "query not found"},
	ErrDuplicateQueryID:  {Code: "QUERY_EXISTS", Message: "query id already exists"},
	ErrProtectedQuery:    {Code: "PROTECTED", Message: "predefined queries cannot be removed or overwritten"},
	ErrStatsNotFound:     {Code: "NOT_FOUND", Message: "no statistics recorded for query"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
