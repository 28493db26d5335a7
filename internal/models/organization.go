// internal/models/organization.go
package models

type Organization struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Domain      string                 `json:"domain,omitempty"`
	ContactInfo map[string]interface{} `json:"contactInfo,omitempty"`
	IsActive    bool                   `json:"isActive"`
}
