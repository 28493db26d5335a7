// internal/models/record.go
package models

import "time"

// Record is anything stored per organization.
type Record interface {
	GetID() string
	GetOrganizationID() string
}

// Timestamps is embedded by every mutable record.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets UpdatedAt, and CreatedAt on first write.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
