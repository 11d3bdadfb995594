package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// CategoryFilter selects categories. A nil Active matches both states.
type CategoryFilter struct {
	Active *bool
	Type   domain.TransactionType
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// Create inserts a category. A duplicate name yields domain.ErrCategoryExists.
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}
