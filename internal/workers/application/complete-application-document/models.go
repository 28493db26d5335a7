// internal/workers/application/complete-application-document/models.go
package completeapplicationdocument

type Input struct {
	OrganizationID string `json:"organizationId"`
	ApplicationID  string `json:"applicationId"`
	DocumentName   string `json:"documentName"`
	// FilePath references an upload already stored elsewhere.
	FilePath string `json:"filePath,omitempty"`
}

type Output struct {
	ApplicationID      string   `json:"applicationId"`
	ProgressPercentage int      `json:"progressPercentage"`
	CompletedDocuments []string `json:"completedDocuments"`
	RemainingDocuments []string `json:"remainingDocuments"`
	Changed            bool     `json:"changed"`
}
