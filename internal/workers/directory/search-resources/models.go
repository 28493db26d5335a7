// internal/workers/directory/search-resources/models.go
package searchresources

import (
	"housing-workers/internal/models"
	"housing-workers/internal/repository"
)

type Input struct {
	OrganizationID    string `json:"organizationId"`
	Category          string `json:"category,omitempty"`
	Search            string `json:"search,omitempty"`
	Page              int    `json:"page,omitempty"`
	PageSize          int    `json:"pageSize,omitempty"`
	IncludeCategories bool   `json:"includeCategories,omitempty"`
}

type Output struct {
	Resources  []models.Resource          `json:"resources"`
	Total      int                        `json:"total"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"pageSize"`
	Categories []repository.CategoryCount `json:"categories,omitempty"`
}
