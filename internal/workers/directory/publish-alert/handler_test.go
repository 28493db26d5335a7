// internal/workers/directory/publish-alert/handler_test.go
package publishalert

import (
	"context"
	"testing"
	"time"

	"housing-workers/internal/common/camunda/camundatest"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/models"
	"housing-workers/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T) (*Handler, *repositorytest.Memory[*models.Alert]) {
	repo := repositorytest.NewMemory[*models.Alert]()
	h := NewHandler(LoadConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))
	h.newID = func() string { return "alert-1" }
	h.now = func() time.Time { return now }
	return h, repo
}

func TestHandler_Execute_Publish(t *testing.T) {
	handler, repo := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		OrganizationID: "org-1",
		Title:          "Mission 180 applications close",
		Message:        "Submit all documents before the deadline.",
		Deadline:       "2026-04-15",
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{AlertID: "alert-1", IsActive: true, PublishedAt: now}, output)

	stored, err := repo.Get(context.Background(), "org-1", "alert-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertTypeInfo, stored.AlertType)
	require.NotNil(t, stored.Deadline)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), *stored.Deadline)
}

func TestHandler_Execute_Deactivate(t *testing.T) {
	handler, repo := createTestHandler(t)
	_, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", Title: "Closed Friday", Message: "Office closed.", AlertType: "warning"})
	require.NoError(t, err)

	later := now.Add(48 * time.Hour)
	handler.now = func() time.Time { return later }

	output, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", AlertID: "alert-1"})

	require.NoError(t, err)
	assert.False(t, output.IsActive)
	assert.Equal(t, now, output.PublishedAt)

	stored, _ := repo.Get(context.Background(), "org-1", "alert-1")
	assert.False(t, stored.IsActive)
	assert.Equal(t, later, stored.UpdatedAt)
	assert.Equal(t, "warning", stored.AlertType)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        *Input
		expectedCode apperrors.ErrorCode
	}{
		{"missing title", &Input{OrganizationID: "org-1", Message: "m"}, apperrors.ErrCodeInvalidInput},
		{"unknown type", &Input{OrganizationID: "org-1", Title: "t", Message: "m", AlertType: "panic"}, apperrors.ErrCodeInvalidInput},
		{"bad deadline", &Input{OrganizationID: "org-1", Title: "t", Message: "m", Deadline: "next week"}, apperrors.ErrCodeInvalidInput},
		{"unknown alert", &Input{OrganizationID: "org-1", AlertID: "missing"}, apperrors.ErrCodeRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := createTestHandler(t)

			_, err := handler.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperrors.FromError(err).Code)
		})
	}
}
