package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "")
	t.Setenv("JIRA_EMAIL", "")
	t.Setenv("JIRA_TOKEN", "")
	t.Setenv("JIRA_TIMEOUT_SECONDS", "")
	t.Setenv("CACHE_TTL_MINUTES", "")
	t.Setenv("SERVER_PORT", "")

	cfg, _ := LoadConfig()

	assert.Equal(t, 30*time.Second, cfg.JiraTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.JiraConfigured())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://company.atlassian.net")
	t.Setenv("JIRA_EMAIL", "user@example.com")
	t.Setenv("JIRA_TOKEN", "api-token")
	t.Setenv("JIRA_PROJECT", "BAU")
	t.Setenv("JIRA_TIMEOUT_SECONDS", "10")
	t.Setenv("CACHE_TTL_MINUTES", "15")
	t.Setenv("SERVER_PORT", "9090")

	cfg, _ := LoadConfig()

	assert.Equal(t, "https://company.atlassian.net", cfg.JiraBaseURL)
	assert.Equal(t, "BAU", cfg.JiraProject)
	assert.Equal(t, 10*time.Second, cfg.JiraTimeout)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.JiraConfigured())
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JIRA_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("CACHE_TTL_MINUTES", "-3")

	cfg, _ := LoadConfig()

	assert.Equal(t, 30*time.Second, cfg.JiraTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}
