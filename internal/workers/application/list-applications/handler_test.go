// internal/workers/application/list-applications/handler_test.go
package listapplications

import (
	"context"
	"regexp"
	"testing"
	"time"

	"housing-workers/internal/common/camunda/camundatest"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"
	"housing-workers/internal/repository/repositorytest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *repositorytest.Memory[*models.Application] {
	repo := repositorytest.NewMemory[*models.Application]()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	apps := []*models.Application{
		{ID: "app-1", OrganizationID: "org-1", ApplicantName: "Ana", Status: "submitted", ProgressPercentage: 25},
		{ID: "app-2", OrganizationID: "org-1", ApplicantName: "Ben", Status: "approved", ProgressPercentage: 100},
		{ID: "app-3", OrganizationID: "org-1", ApplicantName: "Cy", Status: "submitted", ProgressPercentage: 25},
		{ID: "app-9", OrganizationID: "org-2", ApplicantName: "Dee", Status: "submitted", ProgressPercentage: 25},
	}
	for i, a := range apps {
		a.Touch(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, repo.Put(context.Background(), a))
	}
	return repo
}

func ids(apps []models.Application) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		expected []string
	}{
		{"newest first", &Input{OrganizationID: "org-1"}, []string{"app-3", "app-2", "app-1"}},
		{"by status", &Input{OrganizationID: "org-1", Status: "Submitted"}, []string{"app-3", "app-1"}},
		{"limit", &Input{OrganizationID: "org-1", Limit: 2}, []string{"app-3", "app-2"}},
		{"other tenant", &Input{OrganizationID: "org-2"}, []string{"app-9"}},
		{"unknown organization", &Input{OrganizationID: "org-7"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(output.Applications))
			assert.Equal(t, len(tt.expected), output.Count)
		})
	}
}

func TestHandler_Execute_UnknownStatus(t *testing.T) {
	handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", Status: "pending"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidStatus, apperrors.FromError(err).Code)
}

func TestHandler_Execute_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM applications WHERE organization_id = $1 AND data->>'status' = $2 ORDER BY (data->>'createdAt')::timestamptz DESC LIMIT $3`)).
		WithArgs("org-1", "under_review", 200).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"app-4","organizationId":"org-1","applicantName":"Eve","status":"under_review","progressPercentage":50}`)))

	repo := repository.NewPostgresRepository[*models.Application](db, repository.TableApplications)
	handler := NewHandler(LoadConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", Status: "under_review", Limit: 1000})

	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, 50, output.Applications[0].ProgressPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Handle(t *testing.T) {
	t.Run("completes with applications", func(t *testing.T) {
		responder := &camundatest.Responder{}
		handler := NewHandler(LoadConfig(), seed(t), responder, logger.NewTestLogger(t))

		handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1","limit":1}`))

		require.Len(t, responder.Completed, 1)
		out := responder.Completed[0].(*Output)
		assert.Equal(t, []string{"app-3"}, ids(out.Applications))
	})

	t.Run("query failure fails the job", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery("SELECT data FROM applications").WillReturnError(assert.AnError)

		responder := &camundatest.Responder{}
		repo := repository.NewPostgresRepository[*models.Application](db, repository.TableApplications)
		handler := NewHandler(LoadConfig(), repo, responder, logger.NewTestLogger(t))

		handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1"}`))

		require.Len(t, responder.Failed, 1)
		assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.FromError(responder.Failed[0]).Code)
	})
}
