// internal/workers/directory/upsert-resource/handler_test.go
package upsertresource

import (
	"context"
	"errors"
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

// ==========================
// Test Helper Functions
// ==========================

type fakeIndex struct {
	docs map[string]models.Resource
	err  error
}

func (f *fakeIndex) Index(_ context.Context, r *models.Resource) error {
	if f.err != nil {
		return f.err
	}
	if f.docs == nil {
		f.docs = map[string]models.Resource{}
	}
	f.docs[r.ID] = *r
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var now = time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

func createTestHandler(t *testing.T, index *fakeIndex) (*Handler, *repositorytest.Memory[*models.Resource]) {
	repo := repositorytest.NewMemory[*models.Resource]()
	h := NewHandler(LoadConfig(), repo, index, &camundatest.Responder{}, logger.NewTestLogger(t))
	h.newID = func() string { return "res-1" }
	h.now = func() time.Time { return now }
	return h, repo
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Create(t *testing.T) {
	index := &fakeIndex{}
	handler, repo := createTestHandler(t, index)

	output, err := handler.Execute(context.Background(), &Input{
		OrganizationID: "org-1",
		Name:           strPtr("  St. Vincent Shelter "),
		Category:       strPtr("Shelter"),
		Phone:          strPtr("937-555-0199"),
		Hours:          strPtr("24/7"),
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{ResourceID: "res-1", Created: true, IsActive: true, Indexed: true}, output)

	stored, err := repo.Get(context.Background(), "org-1", "res-1")
	require.NoError(t, err)
	assert.Equal(t, "St. Vincent Shelter", stored.Name)
	assert.Equal(t, "shelter", stored.Category)
	assert.Equal(t, now, stored.CreatedAt)
	assert.Equal(t, "St. Vincent Shelter", index.docs["res-1"].Name)
}

func TestHandler_Execute_UpdateAndSoftDelete(t *testing.T) {
	index := &fakeIndex{}
	handler, repo := createTestHandler(t, index)

	_, err := handler.Execute(context.Background(), &Input{OrganizationID: "org-1", Name: strPtr("Food Pantry"), Category: strPtr("food")})
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), &Input{
		OrganizationID: "org-1",
		ResourceID:     "res-1",
		Hours:          strPtr("Mon-Fri 9-5"),
		IsActive:       boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, output.Created)
	assert.False(t, output.IsActive)

	stored, _ := repo.Get(context.Background(), "org-1", "res-1")
	assert.Equal(t, "Food Pantry", stored.Name)
	assert.Equal(t, "Mon-Fri 9-5", stored.Hours)
	assert.False(t, stored.IsActive)
	assert.False(t, index.docs["res-1"].IsActive)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		index        *fakeIndex
		input        *Input
		expectedCode apperrors.ErrorCode
	}{
		{
			name:         "missing name",
			index:        &fakeIndex{},
			input:        &Input{OrganizationID: "org-1", Category: strPtr("food")},
			expectedCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:         "unknown resource",
			index:        &fakeIndex{},
			input:        &Input{OrganizationID: "org-1", ResourceID: "res-404", Name: strPtr("x")},
			expectedCode: apperrors.ErrCodeRecordNotFound,
		},
		{
			name:         "index unavailable",
			index:        &fakeIndex{err: errors.New("503 Service Unavailable")},
			input:        &Input{OrganizationID: "org-1", Name: strPtr("Clinic"), Category: strPtr("health")},
			expectedCode: apperrors.ErrCodeIndexFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := createTestHandler(t, tt.index)

			_, err := handler.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperrors.FromError(err).Code)
		})
	}
}
