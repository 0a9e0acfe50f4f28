package domain

import "context"

// Issue представляет задачу Jira в плоском виде. Кэш и исполнитель не
// интерпретируют поля, они прокидываются в UI как есть. Даты остаются
// строками в формате Jira.
type Issue struct {
	Key       string   `json:"key"`
	Summary   string   `json:"summary"`
	Status    string   `json:"status"`
	Priority  string   `json:"priority"`
	Assignee  string   `json:"assignee,omitempty"`
	Reporter  string   `json:"reporter,omitempty"`
	IssueType string   `json:"issue_type"`
	Project   string   `json:"project"`
	Labels    []string `json:"labels,omitempty"`
	Created   string   `json:"created"`
	Updated   string   `json:"updated"`
	DueDate   string   `json:"due_date,omitempty"`
}

// SearchResult — результат обращения к поисковому API.
type SearchResult struct {
	Issues []Issue
	Total  int
}

// SearchClient определяет контракт удаленного поискового API Jira.
// Неуспех возвращается как *RemoteExecutionError.
type SearchClient interface {
	SearchIssues(ctx context.Context, jql string, maxResults int) (*SearchResult, error)
}
