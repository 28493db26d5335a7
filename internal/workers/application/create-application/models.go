// internal/workers/application/create-application/models.go
package createapplication

type Input struct {
	OrganizationID  string `json:"organizationId"`
	ApplicantName   string `json:"applicantName"`
	ApplicantEmail  string `json:"applicantEmail,omitempty"`
	ApplicantPhone  string `json:"applicantPhone,omitempty"`
	ApplicationType string `json:"applicationType,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type Output struct {
	ApplicationID      string   `json:"applicationId"`
	Status             string   `json:"status"`
	ProgressPercentage int      `json:"progressPercentage"`
	RequiredDocuments  []string `json:"requiredDocuments"`
	CreatedAt          string   `json:"createdAt"` // ISO 8601
}
