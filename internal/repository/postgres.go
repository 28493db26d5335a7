// internal/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"housing-workers/internal/models"
)

const maxQueryLimit = 500

var fieldPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// TimestampFields hold RFC3339 values. Their text form does not sort
// chronologically, so they are ordered as timestamptz.
var TimestampFields = map[string]bool{
	"createdAt":  true,
	"updatedAt":  true,
	"uploadedAt": true,
	"deadline":   true,
}

// Tables backed by a PostgresRepository.
const (
	TableApplications  = "applications"
	TableDocuments     = "document_checklist_items"
	TableResources     = "resources"
	TableAlerts        = "alerts"
	TableContacts      = "contact_messages"
	TableCalculations  = "financial_calculations"
	TableNotifications = "notifications"
)

// PostgresRepository keeps each record as a JSONB document in table,
// next to its organization_id and id columns.
type PostgresRepository[T models.Record] struct {
	db    *sql.DB
	table string
}

func NewPostgresRepository[T models.Record](db *sql.DB, table string) *PostgresRepository[T] {
	return &PostgresRepository[T]{db: db, table: table}
}

func (r *PostgresRepository[T]) Get(ctx context.Context, organizationID, id string) (T, error) {
	var rec T
	var data []byte
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT data FROM %s WHERE organization_id = $1 AND id = $2`, r.table),
		organizationID, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %s %s", ErrNotFound, r.table, id)
	}
	if err != nil {
		return rec, fmt.Errorf("select from %s: %w", r.table, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode %s %s: %w", r.table, id, err)
	}
	return rec, nil
}

func (r *PostgresRepository[T]) Put(ctx context.Context, record T) error {
	if record.GetOrganizationID() == "" || record.GetID() == "" {
		return fmt.Errorf("put into %s: organization id and id are required", r.table)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", r.table, record.GetID(), err)
	}

	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (organization_id, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (organization_id, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`, r.table),
		record.GetOrganizationID(), record.GetID(), data,
	)
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", r.table, err)
	}
	return nil
}

func (r *PostgresRepository[T]) Query(ctx context.Context, filter Filter) ([]T, error) {
	query, args, err := r.buildQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.table, err)
	}
	return out, nil
}

func (r *PostgresRepository[T]) buildQuery(filter Filter) (string, []interface{}, error) {
	if filter.OrganizationID == "" {
		return "", nil, fmt.Errorf("query %s: organization id is required", r.table)
	}

	var sb strings.Builder
	args := []interface{}{filter.OrganizationID}
	fmt.Fprintf(&sb, "SELECT data FROM %s WHERE organization_id = $1", r.table)

	fields := make([]string, 0, len(filter.Equals))
	for field := range filter.Equals {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if !fieldPattern.MatchString(field) {
			return "", nil, fmt.Errorf("query %s: invalid field %q", r.table, field)
		}
		args = append(args, fmt.Sprint(filter.Equals[field]))
		fmt.Fprintf(&sb, " AND data->>'%s' = $%d", field, len(args))
	}

	if filter.OrderBy != "" {
		if !fieldPattern.MatchString(filter.OrderBy) {
			return "", nil, fmt.Errorf("query %s: invalid order field %q", r.table, filter.OrderBy)
		}
		dir := "ASC"
		if filter.Descending {
			dir = "DESC"
		}
		if TimestampFields[filter.OrderBy] {
			fmt.Fprintf(&sb, " ORDER BY (data->>'%s')::timestamptz %s", filter.OrderBy, dir)
		} else {
			fmt.Fprintf(&sb, " ORDER BY data->>'%s' %s", filter.OrderBy, dir)
		}
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxQueryLimit {
		limit = maxQueryLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return sb.String(), args, nil
}
