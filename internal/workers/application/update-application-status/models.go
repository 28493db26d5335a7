// internal/workers/application/update-application-status/models.go
package updateapplicationstatus

type Input struct {
	OrganizationID string `json:"organizationId"`
	ApplicationID  string `json:"applicationId"`
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
}

type Output struct {
	ApplicationID      string `json:"applicationId"`
	Status             string `json:"status"`
	PreviousStatus     string `json:"previousStatus"`
	ProgressPercentage int    `json:"progressPercentage"`
	// Notify is set for decisions so the process can message the applicant.
	Notify    bool   `json:"notify"`
	UpdatedAt string `json:"updatedAt"`
}
