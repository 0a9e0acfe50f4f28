package repository

import (
	"fmt"
	"os"
	"time"

	"jira-dashboard-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// catalogFile описывает YAML-файл дополнительных предопределенных запросов.
type catalogFile struct {
	Queries []catalogEntry `yaml:"queries"`
}

type catalogEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	JQL         string   `yaml:"jql"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	MaxResults  int      `yaml:"max_results"`
}

// LoadCatalogFile читает дополнительные предопределенные запросы из YAML.
// Загруженные определения защищаются наравне со встроенным набором.
func LoadCatalogFile(path string) ([]*domain.QueryDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	now := time.Now()
	defs := make([]*domain.QueryDefinition, 0, len(file.Queries))
	for _, entry := range file.Queries {
		if entry.ID == "" {
			return nil, fmt.Errorf("catalog entry without id")
		}
		if entry.JQL == "" {
			return nil, fmt.Errorf("catalog entry %q: %w", entry.ID, domain.ErrEmptyJQL)
		}

		category := domain.Category(entry.Category)
		if entry.Category == "" {
			category = domain.CategoryBasic
		}
		if !category.Valid() {
			return nil, fmt.Errorf("catalog entry %q: %w", entry.ID, domain.ErrInvalidCategory)
		}

		maxResults := entry.MaxResults
		if maxResults <= 0 {
			maxResults = domain.DefaultMaxResults
		}

		defs = append(defs, &domain.QueryDefinition{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			JQL:         entry.JQL,
			Category:    category,
			Tags:        entry.Tags,
			MaxResults:  maxResults,
			CreatedAt:   now,
		})
	}
	return defs, nil
}
