package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// CreateCategoryInput carries a new category. Type defaults to expense for
// admin-created categories and is required for user-created ones.
type CreateCategoryInput struct {
	Name string
	Type domain.TransactionType
}

// UpdateCategoryInput is a partial update: empty Name and nil IsActive keep
// the current values.
type UpdateCategoryInput struct {
	ID       string
	Name     string
	IsActive *bool
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	ListActive(ctx context.Context, typ domain.TransactionType) ([]*domain.Category, error)
	ListAll(ctx context.Context) ([]*domain.Category, error)
	CreateByUser(ctx context.Context, actor Actor, in CreateCategoryInput) (*domain.Category, error)
	CreateByAdmin(ctx context.Context, actor Actor, in CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, actor Actor, in UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
