// internal/models/document.go
package models

import "time"

// DocumentChecklistItem tracks one required document of an application.
type DocumentChecklistItem struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	ApplicationID  string     `json:"applicationId"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	IsUploaded     bool       `json:"isUploaded"`
	UploadedAt     *time.Time `json:"uploadedAt,omitempty"`
	FilePath       string     `json:"filePath,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (d *DocumentChecklistItem) GetID() string             { return d.ID }
func (d *DocumentChecklistItem) GetOrganizationID() string { return d.OrganizationID }

// MarkUploaded is a no-op for an item that is already uploaded.
func (d *DocumentChecklistItem) MarkUploaded(filePath string, at time.Time) bool {
	if d.IsUploaded {
		return false
	}
	d.IsUploaded = true
	d.UploadedAt = &at
	d.FilePath = filePath
	return true
}
