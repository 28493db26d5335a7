// internal/models/application.go
package models

import (
	"time"

	"housing-workers/internal/domain/progress"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Application is one applicant's case in a housing-assistance program.
type Application struct {
	ID                 string   `json:"id"`
	OrganizationID     string   `json:"organizationId"`
	ApplicantName      string   `json:"applicantName"`
	ApplicantEmail     string   `json:"applicantEmail,omitempty"`
	ApplicantPhone     string   `json:"applicantPhone,omitempty"`
	ApplicationType    string   `json:"applicationType"`
	Status             string   `json:"status"`
	ProgressPercentage int      `json:"progressPercentage"`
	Notes              string   `json:"notes,omitempty"`
	RequiredDocuments  []string `json:"requiredDocuments"`
	CompletedDocuments []string `json:"completedDocuments"`
	Timestamps
}

func (a *Application) GetID() string             { return a.ID }
func (a *Application) GetOrganizationID() string { return a.OrganizationID }

// Tracker exposes the fields the progress model works on.
func (a *Application) Tracker() progress.Tracker {
	return progress.Tracker{
		Status:             progress.Status(a.Status),
		Notes:              a.Notes,
		ProgressPercentage: a.ProgressPercentage,
		RequiredDocuments:  a.RequiredDocuments,
		CompletedDocuments: a.CompletedDocuments,
		UpdatedAt:          a.UpdatedAt,
	}
}

// Apply copies a tracker's state back onto the application.
func (a *Application) Apply(t progress.Tracker) {
	a.Status = string(t.Status)
	a.Notes = t.Notes
	a.ProgressPercentage = t.ProgressPercentage
	a.RequiredDocuments = t.RequiredDocuments
	a.CompletedDocuments = t.CompletedDocuments
	if !t.UpdatedAt.IsZero() {
		a.UpdatedAt = t.UpdatedAt
	}
}

// NewApplication builds a submitted application with its checklist seeded
// for applicationType.
func NewApplication(id, organizationID, applicantName, applicationType string, now time.Time) *Application {
	if applicationType == "" {
		applicationType = progress.DefaultApplicationType
	}
	app := &Application{
		ID:              id,
		OrganizationID:  organizationID,
		ApplicantName:   applicantName,
		ApplicationType: applicationType,
	}
	app.Apply(progress.NewTracker(applicationType))
	app.Touch(now)
	return app
}

func (a *Application) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.OrganizationID, validation.Required),
		validation.Field(&a.ApplicantName, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.ApplicantEmail, is.EmailFormat),
		validation.Field(&a.ProgressPercentage, validation.Min(0), validation.Max(100)),
	)
}
