// internal/workers/contact/submit-contact-message/handler_test.go
package submitcontactmessage

import (
	"context"
	"encoding/json"
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

var card = models.ContactCard{
	Organization: "Dayton Neighborhood Development Corp",
	Address:      "101 Main St, Dayton, OH",
	Phone:        "937-555-0100",
	Email:        "info@dndc.org",
	Hours:        "Mon-Fri 9am-5pm",
}

func testConfig() *Config {
	c := LoadConfig()
	c.Card = card
	return c
}

func TestHandler_Execute_StoresMessage(t *testing.T) {
	repo := repositorytest.NewMemory[*models.ContactMessage]()
	handler := NewHandler(testConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))
	handler.newID = func() string { return "msg-1" }
	at := time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)
	handler.now = func() time.Time { return at }

	output, err := handler.Execute(context.Background(), &Input{
		OrganizationID: "org-1",
		Name:           "Dana Reyes",
		Email:          "Dana@Example.com ",
		Message:        "How do I apply for Mission 180?",
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{
		MessageID:   "msg-1",
		Status:      models.ContactStatusNew,
		Email:       "dana@example.com",
		SubmittedAt: at,
		Contact:     card,
	}, output)

	stored, err := repo.Get(context.Background(), "org-1", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, "How do I apply for Mission 180?", stored.Message)
	assert.Equal(t, models.ContactStatusNew, stored.Status)
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"missing name", &Input{OrganizationID: "org-1", Message: "hello"}},
		{"blank message", &Input{OrganizationID: "org-1", Name: "Dana", Message: "   "}},
		{"bad email", &Input{OrganizationID: "org-1", Name: "Dana", Email: "not-an-email", Message: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repositorytest.NewMemory[*models.ContactMessage]()
			handler := NewHandler(testConfig(), repo, &camundatest.Responder{}, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.FromError(err).Code)
		})
	}
}

func TestHandler_Handle_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_messages")).
		WithArgs("org-1", "msg-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	responder := &camundatest.Responder{}
	repo := repository.NewPostgresRepository[*models.ContactMessage](db, repository.TableContacts)
	handler := NewHandler(testConfig(), repo, responder, logger.NewTestLogger(t))
	handler.newID = func() string { return "msg-1" }

	vars, _ := json.Marshal(Input{OrganizationID: "org-1", Name: "Dana", Message: "Callback please"})
	handler.Handle(nil, camundatest.Job(TaskType, string(vars)))

	require.Len(t, responder.Completed, 1)
	output := responder.Completed[0].(*Output)
	assert.Equal(t, "msg-1", output.MessageID)
	assert.Equal(t, card.Phone, output.Contact.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Handle_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO contact_messages").WillReturnError(assert.AnError)

	responder := &camundatest.Responder{}
	repo := repository.NewPostgresRepository[*models.ContactMessage](db, repository.TableContacts)
	handler := NewHandler(testConfig(), repo, responder, logger.NewTestLogger(t))

	handler.Handle(nil, camundatest.Job(TaskType, `{"organizationId":"org-1","name":"Dana","message":"hi"}`))

	require.Len(t, responder.Failed, 1)
	assert.Equal(t, apperrors.ErrCodeDatabaseInsertFailed, apperrors.FromError(responder.Failed[0]).Code)
}
