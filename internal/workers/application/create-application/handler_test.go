// internal/workers/application/create-application/handler_test.go
package createapplication

import (
	"context"
	"errors"
	"testing"

	"housing-workers/internal/common/camunda/camundatest"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"
	"housing-workers/internal/repository/repositorytest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestInput() *Input {
	return &Input{
		OrganizationID: "org-1",
		ApplicantName:  "Jane Doe",
		ApplicantEmail: "jane@example.com",
		ApplicantPhone: "+19375550100",
	}
}

// Create a test logger that implements your logger.Logger interface
type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

type fakeAudit struct {
	events []string
	err    error
}

func (f *fakeAudit) Record(_ context.Context, _, eventType, _, _ string, _ map[string]interface{}) error {
	f.events = append(f.events, eventType)
	return f.err
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs("org-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for i := 0; i < 6; i++ {
		mock.ExpectExec(`INSERT INTO document_checklist_items`).
			WithArgs("org-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("org-1", "application_created", "application", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(
		LoadConfig(),
		repository.NewPostgresRepository[*models.Application](db, repository.TableApplications),
		repository.NewPostgresRepository[*models.DocumentChecklistItem](db, repository.TableDocuments),
		repository.NewAuditLog(db),
		&camundatest.Responder{},
		newTestLogger(t),
	)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.Equal(t, "submitted", output.Status)
	assert.Equal(t, 25, output.ProgressPercentage)
	assert.Equal(t, []string{
		"Photo ID", "Proof of Income", "Social Security Card",
		"Birth Certificates", "Landlord References", "Bank Statements",
	}, output.RequiredDocuments)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_SeedsChecklist(t *testing.T) {
	apps := repositorytest.NewMemory[*models.Application]()
	checklist := repositorytest.NewMemory[*models.DocumentChecklistItem]()
	audit := &fakeAudit{}

	handler := NewHandler(LoadConfig(), apps, checklist, audit, &camundatest.Responder{}, newTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	stored, err := apps.Get(context.Background(), "org-1", output.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "mission_180", stored.ApplicationType)
	assert.Equal(t, "jane@example.com", stored.ApplicantEmail)

	items, err := checklist.Query(context.Background(), repository.Filter{
		OrganizationID: "org-1",
		Equals:         map[string]interface{}{"applicationId": output.ApplicationID},
	})
	require.NoError(t, err)
	require.Len(t, items, 6)
	for _, item := range items {
		assert.False(t, item.IsUploaded)
		assert.NotEmpty(t, item.Description)
	}
	assert.Equal(t, []string{"application_created"}, audit.events)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "missing applicant name", input: &Input{OrganizationID: "org-1", ApplicantName: "   "}},
		{name: "missing organization", input: &Input{ApplicantName: "Jane"}},
		{name: "malformed email", input: &Input{OrganizationID: "org-1", ApplicantName: "Jane", ApplicantEmail: "jane"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(LoadConfig(),
				repositorytest.NewMemory[*models.Application](),
				repositorytest.NewMemory[*models.DocumentChecklistItem](),
				&fakeAudit{}, &camundatest.Responder{}, newTestLogger(t))

			_, err := handler.Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO applications`).WillReturnError(errors.New("connection refused"))

	handler := NewHandler(LoadConfig(),
		repository.NewPostgresRepository[*models.Application](db, repository.TableApplications),
		repositorytest.NewMemory[*models.DocumentChecklistItem](),
		&fakeAudit{}, &camundatest.Responder{}, newTestLogger(t))

	_, err = handler.Execute(context.Background(), createTestInput())
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestHandler_Execute_AuditFailureIsNonFatal(t *testing.T) {
	handler := NewHandler(LoadConfig(),
		repositorytest.NewMemory[*models.Application](),
		repositorytest.NewMemory[*models.DocumentChecklistItem](),
		&fakeAudit{err: errors.New("audit table missing")}, &camundatest.Responder{}, newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
}

func TestHandler_Handle_Completes(t *testing.T) {
	responder := &camundatest.Responder{}
	handler := NewHandler(LoadConfig(),
		repositorytest.NewMemory[*models.Application](),
		repositorytest.NewMemory[*models.DocumentChecklistItem](),
		&fakeAudit{}, responder, newTestLogger(t))

	handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1","applicantName":"Jane Doe"}`))

	require.Len(t, responder.Completed, 1)
	out, ok := responder.Completed[0].(*Output)
	require.True(t, ok)
	assert.Equal(t, "submitted", out.Status)
	assert.Empty(t, responder.Failed)
}
