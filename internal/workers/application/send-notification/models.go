// internal/workers/application/send-notification/models.go
package sendnotification

type Input struct {
	OrganizationID   string                 `json:"organizationId,omitempty"`
	NotificationType string                 `json:"notificationType"`
	RecipientEmail   string                 `json:"recipientEmail,omitempty"`
	RecipientPhone   string                 `json:"recipientPhone,omitempty"`
	ApplicationID    string                 `json:"applicationId,omitempty"`
	Priority         string                 `json:"priority,omitempty"` // low, normal, high
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeApplicationReceived      = "application_received"
	TypeApplicationStatusUpdated = "application_status_updated"
	TypeDocumentCompleted        = "document_completed"
	TypeContactAcknowledgement   = "contact_acknowledgement"
	TypeContactReceived          = "contact_received"
	TypeAlertPublished           = "alert_published"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)
