// internal/workers/directory/upsert-resource/models.go
package upsertresource

// Input carries the resource fields. On update, nil fields keep their
// stored value.
type Input struct {
	OrganizationID string  `json:"organizationId"`
	ResourceID     string  `json:"resourceId,omitempty"`
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Category       *string `json:"category,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	Hours          *string `json:"hours,omitempty"`
	Eligibility    *string `json:"eligibility,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

type Output struct {
	ResourceID string `json:"resourceId"`
	Created    bool   `json:"created"`
	IsActive   bool   `json:"isActive"`
	Indexed    bool   `json:"indexed"`
}
