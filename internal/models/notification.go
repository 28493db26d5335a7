// internal/models/notification.go
package models

import "time"

// Notification is the delivery log entry for one send-notification job.
type Notification struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organizationId"`
	NotificationType string    `json:"notificationType"`
	ApplicationID    string    `json:"applicationId,omitempty"`
	Channels         []string  `json:"channels"`
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
	SentAt           time.Time `json:"sentAt"`
}

func (n *Notification) GetID() string             { return n.ID }
func (n *Notification) GetOrganizationID() string { return n.OrganizationID }

type NotificationTemplate struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
