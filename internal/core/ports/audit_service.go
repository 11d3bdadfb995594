package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID string
	Role   domain.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// AuditRecord is the caller-supplied part of an audit entry. The timestamp
// and ID are assigned by the recorder.
type AuditRecord struct {
	Action   domain.AuditAction
	Entity   domain.AuditEntity
	EntityID *string
	Actor    Actor
	Metadata map[string]any
}

// AuditRecorder appends entries to the audit trail.
//
// Record is best-effort: it logs its own failures and returns the error
// only for visibility. Callers discard it, because the business mutation has
// already succeeded by the time the entry is written.
type AuditRecorder interface {
	Record(ctx context.Context, rec AuditRecord) error
}

// AuditSink receives entries after they are persisted, for fan-out to
// external consumers. Enqueue must not block.
type AuditSink interface {
	Enqueue(entry domain.AuditLogEntry)
}

// AuditService is the admin read path of the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditLogView, error)
}
