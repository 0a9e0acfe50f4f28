package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JiraBaseURL string
	JiraEmail   string
	JiraToken   string
	JiraProject string
	JiraTimeout time.Duration
	CacheTTL    time.Duration
	QueriesFile string
	ServerPort  string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		JiraBaseURL: getEnv("JIRA_BASE_URL", ""),
		JiraEmail:   getEnv("JIRA_EMAIL", ""),
		JiraToken:   getEnv("JIRA_TOKEN", ""),
		JiraProject: getEnv("JIRA_PROJECT", ""),
		JiraTimeout: time.Duration(getEnvInt("JIRA_TIMEOUT_SECONDS", 30)) * time.Second,
		CacheTTL:    time.Duration(getEnvInt("CACHE_TTL_MINUTES", 5)) * time.Minute,
		QueriesFile: getEnv("QUERIES_FILE", ""),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
	}, err
}

// JiraConfigured сообщает, заданы ли учетные данные Jira целиком.
func (c Config) JiraConfigured() bool {
	return c.JiraBaseURL != "" && c.JiraEmail != "" && c.JiraToken != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
