// internal/workers/application/list-application-documents/handler_test.go
package listapplicationdocuments

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

func seed(t *testing.T) *repositorytest.Memory[*models.DocumentChecklistItem] {
	repo := repositorytest.NewMemory[*models.DocumentChecklistItem]()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	items := []*models.DocumentChecklistItem{
		{ID: "d-2", OrganizationID: "org-1", ApplicationID: "app-1", Name: "Proof of Income", CreatedAt: base.Add(time.Second)},
		{ID: "d-1", OrganizationID: "org-1", ApplicationID: "app-1", Name: "Photo ID", CreatedAt: base},
		{ID: "d-3", OrganizationID: "org-1", ApplicationID: "app-2", Name: "Photo ID", CreatedAt: base},
		{ID: "d-4", OrganizationID: "org-2", ApplicationID: "app-1", Name: "Photo ID", CreatedAt: base},
	}
	items[1].MarkUploaded("uploads/app-1/id.pdf", base.Add(time.Hour))
	for _, item := range items {
		require.NoError(t, repo.Put(context.Background(), item))
	}
	return repo
}

func names(items []models.DocumentChecklistItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", ApplicationID: " app-1 "})

	require.NoError(t, err)
	assert.Equal(t, "app-1", output.ApplicationID)
	assert.Equal(t, []string{"Photo ID", "Proof of Income"}, names(output.Documents))
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, 1, output.UploadedCount)
	assert.Equal(t, "uploads/app-1/id.pdf", output.Documents[0].FilePath)
}

func TestHandler_Execute_NoChecklist(t *testing.T) {
	handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", ApplicationID: "app-404"})

	require.NoError(t, err)
	assert.Empty(t, output.Documents)
	assert.NotNil(t, output.Documents)
	assert.Zero(t, output.Count)
}

func TestHandler_Execute_MissingApplicationID(t *testing.T) {
	handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", ApplicationID: "  "})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.FromError(err).Code)
}

func TestHandler_Execute_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM document_checklist_items WHERE organization_id = $1 AND data->>'applicationId' = $2 ORDER BY (data->>'createdAt')::timestamptz ASC LIMIT $3`)).
		WithArgs("org-1", "app-1", 500).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"d-1","organizationId":"org-1","applicationId":"app-1","name":"Photo ID","isUploaded":true}`)).
			AddRow([]byte(`{"id":"d-2","organizationId":"org-1","applicationId":"app-1","name":"Lease","isUploaded":false}`)))

	repo := repository.NewPostgresRepository[*models.DocumentChecklistItem](db, repository.TableDocuments)
	handler := NewHandler(LoadConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", ApplicationID: "app-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Photo ID", "Lease"}, names(output.Documents))
	assert.Equal(t, 1, output.UploadedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Handle(t *testing.T) {
	t.Run("completes with the checklist", func(t *testing.T) {
		responder := &camundatest.Responder{}
		handler := NewHandler(LoadConfig(), seed(t), responder, logger.NewTestLogger(t))

		handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1","applicationId":"app-2"}`))

		require.Len(t, responder.Completed, 1)
		out := responder.Completed[0].(*Output)
		assert.Equal(t, 1, out.Count)
	})

	t.Run("query failure fails the job", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery("SELECT data FROM document_checklist_items").WillReturnError(assert.AnError)

		responder := &camundatest.Responder{}
		repo := repository.NewPostgresRepository[*models.DocumentChecklistItem](db, repository.TableDocuments)
		handler := NewHandler(LoadConfig(), repo, responder, logger.NewTestLogger(t))

		handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1","applicationId":"app-1"}`))

		require.Len(t, responder.Failed, 1)
		assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.FromError(responder.Failed[0]).Code)
	})
}
