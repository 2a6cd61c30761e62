package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pazarglobal/agent/internal/domain"
)

// AuditRepository appends agent audit events.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit event row.
func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO agent_audit_log (user_id, phone, event, status, payload)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Phone, entry.Event, entry.Status, entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}
