// internal/models/alert.go
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	AlertTypeInfo    = "info"
	AlertTypeWarning = "warning"
	AlertTypeUrgent  = "urgent"
)

// Alert is a community notice such as an application deadline.
type Alert struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	AlertType      string     `json:"alertType"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	IsActive       bool       `json:"isActive"`
	Timestamps
}

func (a *Alert) GetID() string             { return a.ID }
func (a *Alert) GetOrganizationID() string { return a.OrganizationID }

func (a *Alert) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.OrganizationID, validation.Required),
		validation.Field(&a.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Message, validation.Required),
		validation.Field(&a.AlertType, validation.Required, validation.In(AlertTypeInfo, AlertTypeWarning, AlertTypeUrgent)),
	)
}
