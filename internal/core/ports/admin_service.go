package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// AdminService covers user management and the analytics dashboard.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SoftDeleteUser(ctx context.Context, actor Actor, id string) error
	Analytics(ctx context.Context) (*domain.Analytics, error)
	// RefreshAnalytics recomputes the summary and stores it in the cache.
	RefreshAnalytics(ctx context.Context) error
}
