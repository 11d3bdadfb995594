package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
	"github.com/ledgerly/expense-tracker/internal/pkg/metrics"
)

// AuditService records and lists audit trail entries.
type AuditService struct {
	repo ports.AuditRepository
	sink ports.AuditSink
	log  zerolog.Logger
	now  func() time.Time
}

// NewAuditService returns an AuditService. sink may be nil when no fan-out
// is configured.
func NewAuditService(repo ports.AuditRepository, sink ports.AuditSink, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, sink: sink, log: log, now: time.Now}
}

// Record appends one entry. It is best-effort: a failure is logged here and
// returned only so tests can observe it; callers ignore the result.
func (s *AuditService) Record(ctx context.Context, rec ports.AuditRecord) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	entry := &domain.AuditLogEntry{
		Action:        rec.Action,
		Entity:        rec.Entity,
		EntityID:      rec.EntityID,
		PerformedBy:   rec.Actor.UserID,
		PerformerRole: rec.Actor.Role,
		Timestamp:     s.now().UTC(),
		Metadata:      metadata,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		s.log.Warn().
			Err(err).
			Str("action", string(rec.Action)).
			Str("entity", string(rec.Entity)).
			Str("performed_by", rec.Actor.UserID).
			Msg("failed to record audit entry")
		return fmt.Errorf("record audit entry: %w", err)
	}
	metrics.AuditRecordedTotal.WithLabelValues(string(rec.Action), string(rec.Entity)).Inc()

	if s.sink != nil {
		s.sink.Enqueue(*entry)
	}
	return nil
}

// List returns the audit trail newest first.
func (s *AuditService) List(ctx context.Context, filter ports.AuditFilter) ([]domain.AuditLogView, error) {
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > 0 && filter.Page < 1 {
		filter.Page = 1
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// idRef returns a pointer to id for use as an audit entity reference.
func idRef(id string) *string { return &id }
