package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jira-dashboard-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// Поля, запрашиваемые у Jira при поиске.
var searchFields = []string{
	"key", "summary", "status", "priority", "assignee",
	"reporter", "created", "updated", "project", "issuetype",
	"duedate", "labels",
}

// Client — клиент поискового API Jira (REST v3, basic auth email+token).
type Client struct {
	apiURL     string
	email      string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиент Jira с собственным таймаутом запросов.
func NewClient(baseURL, email, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		apiURL:     strings.TrimRight(baseURL, "/") + "/rest/api/3",
		email:      email,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type namedField struct {
	Name string `json:"name"`
}

type userField struct {
	DisplayName string `json:"displayName"`
}

type issuePayload struct {
	Key    string `json:"key"`
	Fields struct {
		Summary   string     `json:"summary"`
		Status    namedField `json:"status"`
		Priority  namedField `json:"priority"`
		Assignee  *userField `json:"assignee"`
		Reporter  *userField `json:"reporter"`
		IssueType namedField `json:"issuetype"`
		Project   struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"project"`
		Labels  []string `json:"labels"`
		Created string   `json:"created"`
		Updated string   `json:"updated"`
		DueDate string   `json:"duedate"`
	} `json:"fields"`
}

type searchResponse struct {
	Issues []issuePayload `json:"issues"`
	Total  int            `json:"total"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// SearchIssues выполняет JQL-поиск и возвращает плоские записи задач.
// Любой отказ (авторизация, некорректный JQL, сеть, rate limit)
// возвращается как *domain.RemoteExecutionError.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", strings.Join(searchFields, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/search/jql?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewRemoteError(domain.RemoteKindNetwork, err.Error(), err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("jql", jql).Error("Jira search request failed")
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		remoteErr := classifyStatusError(resp.StatusCode, body)
		c.logger.WithFields(logrus.Fields{
			"jql":    jql,
			"status": resp.StatusCode,
			"kind":   remoteErr.Kind,
		}).Error("Jira search rejected")
		return nil, remoteErr
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewRemoteError(domain.RemoteKindRemote, "malformed search response: "+err.Error(), err)
	}

	result := &domain.SearchResult{
		Issues: make([]domain.Issue, len(payload.Issues)),
		Total:  payload.Total,
	}
	for i, issue := range payload.Issues {
		result.Issues[i] = toDomainIssue(issue)
	}
	if result.Total == 0 {
		result.Total = len(result.Issues)
	}
	return result, nil
}

// TestConnection проверяет доступность Jira и учетные данные через /myself.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/myself", nil)
	if err != nil {
		return "", domain.NewRemoteError(domain.RemoteKindNetwork, err.Error(), err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return "", classifyStatusError(resp.StatusCode, body)
	}

	var me struct {
		DisplayName  string `json:"displayName"`
		EmailAddress string `json:"emailAddress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return "", domain.NewRemoteError(domain.RemoteKindRemote, "malformed myself response: "+err.Error(), err)
	}
	return fmt.Sprintf("%s (%s)", me.DisplayName, me.EmailAddress), nil
}

func toDomainIssue(payload issuePayload) domain.Issue {
	issue := domain.Issue{
		Key:       payload.Key,
		Summary:   payload.Fields.Summary,
		Status:    payload.Fields.Status.Name,
		Priority:  payload.Fields.Priority.Name,
		IssueType: payload.Fields.IssueType.Name,
		Project:   payload.Fields.Project.Key,
		Labels:    payload.Fields.Labels,
		Created:   payload.Fields.Created,
		Updated:   payload.Fields.Updated,
		DueDate:   payload.Fields.DueDate,
	}
	if payload.Fields.Assignee != nil {
		issue.Assignee = payload.Fields.Assignee.DisplayName
	}
	if payload.Fields.Reporter != nil {
		issue.Reporter = payload.Fields.Reporter.DisplayName
	}
	return issue
}

func classifyTransportError(err error) *domain.RemoteExecutionError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewRemoteError(domain.RemoteKindNetwork, "request timed out: "+err.Error(), err)
	}
	return domain.NewRemoteError(domain.RemoteKindNetwork, err.Error(), err)
}

func classifyStatusError(status int, body []byte) *domain.RemoteExecutionError {
	reason := fmt.Sprintf("%d %s", status, http.StatusText(status))

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.ErrorMessages) > 0 {
		reason = fmt.Sprintf("%s: %s", reason, strings.Join(parsed.ErrorMessages, "; "))
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewRemoteError(domain.RemoteKindAuth, reason, nil)
	case status == http.StatusBadRequest:
		return domain.NewRemoteError(domain.RemoteKindQuery, reason, nil)
	case status == http.StatusTooManyRequests:
		return domain.NewRemoteError(domain.RemoteKindRateLimit, reason, nil)
	default:
		return domain.NewRemoteError(domain.RemoteKindRemote, reason, nil)
	}
}
