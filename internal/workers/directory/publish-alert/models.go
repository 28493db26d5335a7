// internal/workers/directory/publish-alert/models.go
package publishalert

import "time"

// Input publishes a new alert when AlertID is empty. With an AlertID it
// changes the active flag of that alert, defaulting to deactivation.
type Input struct {
	OrganizationID string `json:"organizationId"`
	AlertID        string `json:"alertId,omitempty"`
	Title          string `json:"title,omitempty"`
	Message        string `json:"message,omitempty"`
	AlertType      string `json:"alertType,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"`
}

type Output struct {
	AlertID     string    `json:"alertId"`
	IsActive    bool      `json:"isActive"`
	PublishedAt time.Time `json:"publishedAt"`
}
