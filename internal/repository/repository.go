// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"housing-workers/internal/models"
)

var ErrNotFound = errors.New("RECORD_NOT_FOUND")

// Filter narrows a Query to one organization's records. Equals matches
// top-level JSON fields of the stored record.
type Filter struct {
	OrganizationID string
	Equals         map[string]interface{}
	OrderBy        string
	Descending     bool
	Limit          int
	Offset         int
}

// Repository stores records of one kind keyed by organization and id.
type Repository[T models.Record] interface {
	Get(ctx context.Context, organizationID, id string) (T, error)
	Put(ctx context.Context, record T) error
	Query(ctx context.Context, filter Filter) ([]T, error)
}
