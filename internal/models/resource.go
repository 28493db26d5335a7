// internal/models/resource.go
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Resource is a directory entry such as a shelter, food bank or utility program.
type Resource struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Hours          string `json:"hours,omitempty"`
	Eligibility    string `json:"eligibility,omitempty"`
	IsActive       bool   `json:"isActive"`
	Timestamps
}

func (r *Resource) GetID() string             { return r.ID }
func (r *Resource) GetOrganizationID() string { return r.OrganizationID }

func (r *Resource) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OrganizationID, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Description, validation.Length(0, 4000)),
	)
}
