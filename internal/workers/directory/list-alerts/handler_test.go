// internal/workers/directory/list-alerts/handler_test.go
package listalerts

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

func seed(t *testing.T) *repositorytest.Memory[*models.Alert] {
	repo := repositorytest.NewMemory[*models.Alert]()
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	alerts := []*models.Alert{
		{ID: "a1", OrganizationID: "org-1", Title: "Oldest", Message: "m", AlertType: "info", IsActive: true},
		{ID: "a2", OrganizationID: "org-1", Title: "Retired", Message: "m", AlertType: "info", IsActive: false},
		{ID: "a3", OrganizationID: "org-1", Title: "Newest", Message: "m", AlertType: "urgent", IsActive: true},
		{ID: "b1", OrganizationID: "org-2", Title: "Other tenant", Message: "m", AlertType: "info", IsActive: true},
	}
	for i, a := range alerts {
		a.Touch(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, repo.Put(context.Background(), a))
	}
	return repo
}

func ids(alerts []models.Alert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.ID)
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	no := false
	tests := []struct {
		name     string
		input    *Input
		expected []string
	}{
		{"active only by default", &Input{OrganizationID: "org-1"}, []string{"a3", "a1"}},
		{"include inactive", &Input{OrganizationID: "org-1", ActiveOnly: &no}, []string{"a3", "a2", "a1"}},
		{"limit", &Input{OrganizationID: "org-1", Limit: 1}, []string{"a3"}},
		{"unknown organization", &Input{OrganizationID: "org-9"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(LoadConfig(), seed(t), &camundatest.Responder{}, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(output.Alerts))
			assert.Equal(t, len(tt.expected), output.Count)
		})
	}
}

func TestHandler_Execute_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM alerts WHERE organization_id = $1 AND data->>'isActive' = $2 ORDER BY (data->>'createdAt')::timestamptz DESC LIMIT $3`)).
		WithArgs("org-1", "true", 50).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"a1","organizationId":"org-1","title":"Rent help","message":"m","alertType":"info","isActive":true}`)))

	repo := repository.NewPostgresRepository[*models.Alert](db, repository.TableAlerts)
	handler := NewHandler(LoadConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "Rent help", output.Alerts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT data FROM alerts").WillReturnError(assert.AnError)

	repo := repository.NewPostgresRepository[*models.Alert](db, repository.TableAlerts)
	handler := NewHandler(LoadConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))

	_, err = handler.Execute(context.Background(), &Input{OrganizationID: "org-1"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.FromError(err).Code)
}
