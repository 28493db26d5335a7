// internal/workers/tenancy/resolve-organization/models.go
package resolveorganization

type Input struct {
	OrganizationSlug string `json:"organizationSlug,omitempty"`
}

type Output struct {
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	OrganizationSlug string `json:"organizationSlug"`
}
