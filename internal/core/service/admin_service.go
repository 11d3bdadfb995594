package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
	"github.com/ledgerly/expense-tracker/internal/pkg/metrics"
)

// AdminService implements user management and the analytics dashboard.
type AdminService struct {
	users    ports.UserRepository
	expenses ports.ExpenseRepository
	cache    ports.AnalyticsCache
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewAdminService returns an AdminService. cache may be nil, in which case
// analytics are computed on every request.
func NewAdminService(
	users ports.UserRepository,
	expenses ports.ExpenseRepository,
	cache ports.AnalyticsCache,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, expenses: expenses, cache: cache, audit: audit, log: log, now: time.Now}
}

// ListUsers returns every user, deleted ones included.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SoftDeleteUser deactivates a non-admin user and ends their session.
func (s *AdminService) SoftDeleteUser(ctx context.Context, actor ports.Actor, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("soft delete user: lookup: %w", err)
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrCannotDeleteAdmin
	}
	if user.IsDeleted() {
		return domain.ErrUserAlreadyDeleted
	}

	if err := s.users.SoftDelete(ctx, user.ID, s.now().UTC()); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("soft delete user: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditDelete,
		Entity:   domain.EntityUser,
		EntityID: idRef(user.ID),
		Actor:    actor,
		Metadata: map[string]any{"userEmail": user.Email},
	})
	s.log.Info().Str("user_id", user.ID).Str("admin_id", actor.UserID).Msg("user soft deleted")
	return nil
}

// Analytics returns the dashboard summary, served from the cache when warm.
// Cache errors fall through to a fresh computation.
func (s *AdminService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.AnalyticsCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("analytics cache read failed")
		case cached != nil:
			metrics.AnalyticsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.AnalyticsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	a, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, a)
	return a, nil
}

// RefreshAnalytics recomputes the summary and overwrites the cached copy.
func (s *AdminService) RefreshAnalytics(ctx context.Context) error {
	a, err := s.compute(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, a)
	return nil
}

func (s *AdminService) compute(ctx context.Context) (*domain.Analytics, error) {
	start := time.Now()
	a, err := s.expenses.Analytics(ctx)
	metrics.AnalyticsDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("compute analytics: %w", err)
	}
	if a.CategoryWiseTotals == nil {
		a.CategoryWiseTotals = []domain.CategoryTotal{}
	}
	if a.MonthlySpendingTrends == nil {
		a.MonthlySpendingTrends = []domain.MonthlyTotal{}
	}
	if a.TopSpendingUsers == nil {
		a.TopSpendingUsers = []domain.UserSpending{}
	}
	return a, nil
}

func (s *AdminService) store(ctx context.Context, a *domain.Analytics) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, a); err != nil {
		s.log.Warn().Err(err).Msg("analytics cache write failed")
	}
}
