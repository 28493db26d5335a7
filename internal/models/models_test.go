package models

import (
	"testing"
	"time"

	"housing-workers/internal/domain/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestNewApplication(t *testing.T) {
	app := NewApplication("app-1", "org-1", "Jane Doe", "", now)

	assert.Equal(t, progress.DefaultApplicationType, app.ApplicationType)
	assert.Equal(t, "submitted", app.Status)
	assert.Equal(t, 25, app.ProgressPercentage)
	assert.Len(t, app.RequiredDocuments, 6)
	assert.Empty(t, app.CompletedDocuments)
	assert.Equal(t, now, app.CreatedAt)
	assert.Equal(t, now, app.UpdatedAt)
	assert.NoError(t, app.Validate())
}

func TestApplication_TrackerRoundTrip(t *testing.T) {
	app := NewApplication("app-1", "org-1", "Jane Doe", "mission_180", now)

	tr, changed, err := progress.CompleteDocument(app.Tracker(), "Photo ID", now.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	app.Apply(tr)

	assert.Equal(t, []string{"Photo ID"}, app.CompletedDocuments)
	assert.Equal(t, now.Add(time.Hour), app.UpdatedAt)
	assert.Equal(t, now, app.CreatedAt)
}

func TestApplication_Validate(t *testing.T) {
	app := NewApplication("app-1", "org-1", "", "", now)
	app.ApplicantEmail = "not-an-email"

	err := app.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applicantName")
	assert.Contains(t, err.Error(), "applicantEmail")
}

func TestAlert_Validate(t *testing.T) {
	alert := &Alert{OrganizationID: "org-1", Title: "Deadline", Message: "Apply by Friday", AlertType: AlertTypeUrgent}
	assert.NoError(t, alert.Validate())

	alert.AlertType = "housing"
	assert.Error(t, alert.Validate())
}

func TestResource_Validate(t *testing.T) {
	r := &Resource{OrganizationID: "org-1", Name: "Food Bank", Category: "food"}
	assert.NoError(t, r.Validate())

	r.Category = ""
	assert.Error(t, r.Validate())
}

func TestContactMessage_Validate(t *testing.T) {
	m := &ContactMessage{OrganizationID: "org-1", Name: "Sam", Message: "Need help with rent", Email: "sam@example.com"}
	assert.NoError(t, m.Validate())

	m.Email = "sam"
	assert.Error(t, m.Validate())
}

func TestDocumentChecklistItem_MarkUploaded(t *testing.T) {
	item := &DocumentChecklistItem{Name: "Photo ID"}

	assert.True(t, item.MarkUploaded("uploads/id.pdf", now))
	assert.True(t, item.IsUploaded)
	assert.Equal(t, "uploads/id.pdf", item.FilePath)
	require.NotNil(t, item.UploadedAt)

	assert.False(t, item.MarkUploaded("uploads/other.pdf", now.Add(time.Hour)))
	assert.Equal(t, "uploads/id.pdf", item.FilePath)
	assert.Equal(t, now, *item.UploadedAt)
}

func TestTimestamps_Touch(t *testing.T) {
	var ts Timestamps
	ts.Touch(now)
	ts.Touch(now.Add(time.Minute))

	assert.Equal(t, now, ts.CreatedAt)
	assert.Equal(t, now.Add(time.Minute), ts.UpdatedAt)
}
