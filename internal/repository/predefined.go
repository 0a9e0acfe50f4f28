package repository

import (
	"fmt"
	"time"

	"jira-dashboard-service/internal/domain"
)

// PredefinedQueries возвращает встроенный каталог предопределенных
// запросов. Если задан ключ проекта, добавляются проектные запросы.
func PredefinedQueries(project string) []*domain.QueryDefinition {
	now := time.Now()

	queries := []*domain.QueryDefinition{
		// Базовые запросы по задачам текущего пользователя
		{
			ID:          "pending",
			Name:        "Pending",
			Description: "Assigned issues waiting to be picked up",
			JQL:         `assignee = currentUser() AND status IN ("To Do", "Open", "New") ORDER BY updated DESC`,
			Category:    domain.CategoryBasic,
			Tags:        []string{"status", "assigned", "pending"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "in_progress",
			Name:        "In Progress",
			Description: "Issues currently under development",
			JQL:         `assignee = currentUser() AND statusCategory = "In Progress" ORDER BY updated DESC`,
			Category:    domain.CategoryBasic,
			Tags:        []string{"status", "assigned", "active"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "high_priority",
			Name:        "High Priority",
			Description: "Critical issues that need attention",
			JQL:         `assignee = currentUser() AND priority IN (High, Highest) ORDER BY updated DESC`,
			Category:    domain.CategoryBasic,
			Tags:        []string{"priority", "critical", "urgent"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "completed",
			Name:        "Completed",
			Description: "Recently finished and closed issues",
			JQL:         `assignee = currentUser() AND statusCategory = Done ORDER BY updated DESC`,
			Category:    domain.CategoryBasic,
			Tags:        []string{"status", "done", "completed"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},

		// Управленческие запросы
		{
			ID:          "escalations_unassigned",
			Name:        "Unassigned Escalations",
			Description: "Escalated issues that still need an assignee",
			JQL:         `issueLinkType in ("is an escalation for") AND assignee is EMPTY AND statusCategory != done ORDER BY created DESC`,
			Category:    domain.CategoryManagement,
			Tags:        []string{"escalation", "unassigned", "urgent", "management"},
			MaxResults:  150,
			CreatedAt:   now,
		},
		{
			ID:          "overdue_issues",
			Name:        "Overdue Issues",
			Description: "Issues whose due date has passed",
			JQL:         `duedate < now() AND statusCategory != done ORDER BY duedate ASC`,
			Category:    domain.CategoryManagement,
			Tags:        []string{"overdue", "deadline", "urgent"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "blocked_issues",
			Name:        "Blocked Issues",
			Description: "Issues flagged as blocked",
			JQL:         `status = Blocked OR labels in (blocked, blocker) ORDER BY updated DESC`,
			Category:    domain.CategoryManagement,
			Tags:        []string{"blocked", "impediment", "review"},
			MaxResults:  75,
			CreatedAt:   now,
		},

		// Запросы сопровождения
		{
			ID:          "old_unresolved",
			Name:        "Old Unresolved Issues",
			Description: "Issues created more than 12 weeks ago and still open",
			JQL:         `created <= -12w AND statusCategory != done ORDER BY created ASC`,
			Category:    domain.CategoryMaintenance,
			Tags:        []string{"old", "unresolved", "review", "maintenance"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},

		// Аналитика по времени
		{
			ID:          "updated_today",
			Name:        "Updated Today",
			Description: "Issues with activity in the last 24 hours",
			JQL:         `assignee = currentUser() AND updated >= -1d ORDER BY updated DESC`,
			Category:    domain.CategoryAnalysis,
			Tags:        []string{"recent", "activity", "today"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "updated_week",
			Name:        "Updated This Week",
			Description: "Issues with activity in the last 7 days",
			JQL:         `assignee = currentUser() AND updated >= -1w ORDER BY updated DESC`,
			Category:    domain.CategoryAnalysis,
			Tags:        []string{"recent", "activity", "weekly"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "created_last_week",
			Name:        "Created Last Week",
			Description: "Issues created in the last 7 days",
			JQL:         `created >= -1w ORDER BY created DESC`,
			Category:    domain.CategoryAnalysis,
			Tags:        []string{"recent", "created", "weekly"},
			MaxResults:  150,
			CreatedAt:   now,
		},
	}

	if project != "" {
		queries = append(queries, projectQueries(project, now)...)
	}
	return queries
}

// projectQueries строит запросы, привязанные к настроенному проекту Jira.
func projectQueries(project string, now time.Time) []*domain.QueryDefinition {
	return []*domain.QueryDefinition{
		{
			ID:          "project_open",
			Name:        "Project Backlog",
			Description: fmt.Sprintf("All open issues of project %s", project),
			JQL:         fmt.Sprintf(`project = %q AND statusCategory != done ORDER BY priority DESC, created DESC`, project),
			Category:    domain.CategoryProject,
			Tags:        []string{"project", "open", "backlog"},
			MaxResults:  domain.DefaultMaxResults,
			CreatedAt:   now,
		},
		{
			ID:          "project_unassigned",
			Name:        "Project Unassigned",
			Description: fmt.Sprintf("Open issues of project %s without an assignee", project),
			JQL:         fmt.Sprintf(`project = %q AND assignee is EMPTY AND statusCategory != done ORDER BY created DESC`, project),
			Category:    domain.CategoryProject,
			Tags:        []string{"project", "unassigned", "needs-assignment"},
			MaxResults:  50,
			CreatedAt:   now,
		},
		{
			ID:          "project_escalations",
			Name:        "Project Escalations",
			Description: fmt.Sprintf("Escalations within project %s", project),
			JQL:         fmt.Sprintf(`project = %q AND issueLinkType in ("is an escalation for") AND statusCategory != done ORDER BY created DESC`, project),
			Category:    domain.CategoryProject,
			Tags:        []string{"project", "escalation", "urgent"},
			MaxResults:  50,
			CreatedAt:   now,
		},
	}
}
