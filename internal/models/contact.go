// internal/models/contact.go
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const ContactStatusNew = "new"

// ContactMessage is a message left through the organization's contact form.
type ContactMessage struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	Timestamps
}

func (m *ContactMessage) GetID() string             { return m.ID }
func (m *ContactMessage) GetOrganizationID() string { return m.OrganizationID }

func (m *ContactMessage) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.OrganizationID, validation.Required),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Email, is.EmailFormat),
		validation.Field(&m.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// ContactCard is the organization contact information shown with the form.
type ContactCard struct {
	Organization string `json:"organization"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Hours        string `json:"hours"`
}
