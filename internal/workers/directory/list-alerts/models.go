// internal/workers/directory/list-alerts/models.go
package listalerts

import "housing-workers/internal/models"

type Input struct {
	OrganizationID string `json:"organizationId"`
	ActiveOnly     *bool  `json:"activeOnly,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

type Output struct {
	Alerts []models.Alert `json:"alerts"`
	Count  int            `json:"count"`
}
