// internal/workers/application/list-application-documents/models.go
package listapplicationdocuments

import "housing-workers/internal/models"

type Input struct {
	OrganizationID string `json:"organizationId"`
	ApplicationID  string `json:"applicationId"`
}

type Output struct {
	ApplicationID string                         `json:"applicationId"`
	Documents     []models.DocumentChecklistItem `json:"documents"`
	Count         int                            `json:"count"`
	UploadedCount int                            `json:"uploadedCount"`
}
