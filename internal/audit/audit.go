// Package audit records agent decisions without ever affecting the request
// path. Every write is best-effort: failures are logged and swallowed.
package audit

import (
	"context"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/logging"
)

// Event names written to the audit log.
const (
	EventListingPublished      = "LISTING_PUBLISHED"
	EventCreditDeducted        = "CREDIT_DEDUCTED"
	EventCreditDeductionFailed = "CREDIT_DEDUCTION_FAILED"
	EventDraftCancelled        = "DRAFT_CANCELLED"
	EventDraftSuperseded       = "DRAFT_SUPERSEDED"
)

// Store is the persistence dependency; satisfied by database.AuditRepository.
type Store interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// Recorder appends audit events best-effort.
type Recorder struct {
	store Store
	log   logging.Logger
}

// NewRecorder wires a recorder. A nil store makes every Record a no-op.
func NewRecorder(store Store, log logging.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record appends one lifecycle event without message context.
func (r *Recorder) Record(ctx context.Context, userID, event string, payload domain.JSONMap) {
	r.RecordEntry(ctx, domain.AuditEntry{UserID: userID, Event: event, Payload: payload})
}

// RecordEntry appends one entry. It never returns an error; a failed write is
// logged and dropped.
func (r *Recorder) RecordEntry(ctx context.Context, entry domain.AuditEntry) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.Insert(ctx, entry); err != nil {
		r.log.Warn("audit write failed",
			logging.String("event", entry.Event),
			logging.String("user_id", entry.UserID),
			logging.Error(err))
	}
}
