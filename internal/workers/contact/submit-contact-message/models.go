// internal/workers/contact/submit-contact-message/models.go
package submitcontactmessage

import (
	"time"

	"housing-workers/internal/models"
)

type Input struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message"`
}

type Output struct {
	MessageID   string             `json:"messageId"`
	Status      string             `json:"status"`
	Email       string             `json:"email,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Contact     models.ContactCard `json:"contact"`
}
