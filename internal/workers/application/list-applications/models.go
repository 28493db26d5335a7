// internal/workers/application/list-applications/models.go
package listapplications

import "housing-workers/internal/models"

type Input struct {
	OrganizationID string `json:"organizationId"`
	Status         string `json:"status,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

type Output struct {
	Applications []models.Application `json:"applications"`
	Count        int                  `json:"count"`
}
