package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// AuditFilter narrows an audit trail listing. Zero values mean "no filter";
// Limit 0 returns every matching entry.
type AuditFilter struct {
	Action      string
	Entity      string
	PerformedBy string
	Page        int
	Limit       int
}

// AuditRepository is the append-only store behind the audit trail. It has
// no update or delete on purpose: entries are immutable once written.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLogEntry) error
	// List returns entries newest first with the performer resolved.
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditLogView, error)
}
