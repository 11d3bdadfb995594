package ports

import (
	"context"
	"time"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// ExpenseFilter selects non-deleted transactions. Empty fields are ignored.
type ExpenseFilter struct {
	UserID     string
	CategoryID string
	From       time.Time
	To         time.Time
}

// ExpenseRepository defines persistence operations for transactions.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	// ListByUser returns the user's non-deleted transactions.
	ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error)
	// ListDetailed returns non-deleted transactions with owner and category
	// resolved.
	ListDetailed(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseDetail, error)
	Update(ctx context.Context, e *domain.Expense) error
	MarkDeleted(ctx context.Context, id string) error
	// Analytics aggregates all non-deleted transactions.
	Analytics(ctx context.Context) (*domain.Analytics, error)
}

// AnalyticsCache stores the computed analytics summary between requests.
// Get returns (nil, nil) on a miss.
type AnalyticsCache interface {
	Get(ctx context.Context) (*domain.Analytics, error)
	Set(ctx context.Context, a *domain.Analytics) error
}
