// internal/repository/organizations.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"housing-workers/internal/models"
)

// OrganizationStore reads tenants from the organizations table.
type OrganizationStore struct {
	db *sql.DB
}

func NewOrganizationStore(db *sql.DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

func (s *OrganizationStore) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var (
		org         models.Organization
		domain      sql.NullString
		contactInfo []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, domain, contact_info, is_active
		FROM organizations
		WHERE slug = $1`, slug,
	).Scan(&org.ID, &org.Name, &org.Slug, &domain, &contactInfo, &org.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: organization %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("select organization %s: %w", slug, err)
	}

	org.Domain = domain.String
	if len(contactInfo) > 0 {
		if err := json.Unmarshal(contactInfo, &org.ContactInfo); err != nil {
			return nil, fmt.Errorf("decode contact info for %s: %w", slug, err)
		}
	}
	return &org, nil
}
