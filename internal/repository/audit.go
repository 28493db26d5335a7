// internal/repository/audit.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog appends rows to audit_log. Callers treat failures as non-fatal.
type AuditLog struct {
	db  *sql.DB
	now func() time.Time
}

func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db, now: time.Now}
}

func (a *AuditLog) Record(ctx context.Context, organizationID, eventType, resourceType, resourceID string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO audit_log (organization_id, event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		organizationID, eventType, resourceType, resourceID, payload, a.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
