package ports

import (
	"context"
	"io"
	"time"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// CreateExpenseInput carries a new transaction. Date defaults to now and Type
// to expense.
type CreateExpenseInput struct {
	Amount      float64
	CategoryID  string
	Description string
	PaymentType string
	Type        domain.TransactionType
	Date        *time.Time
}

// UpdateExpenseInput is a partial update; zero values keep current values.
type UpdateExpenseInput struct {
	ID          string
	Amount      float64
	CategoryID  string
	Description string
	PaymentType string
	Type        domain.TransactionType
	Date        *time.Time
}

// ExportQuery filters the admin CSV export.
type ExportQuery struct {
	From       time.Time
	To         time.Time
	UserID     string
	CategoryID string
}

// ExpenseService defines use-case operations for transactions.
type ExpenseService interface {
	ListMine(ctx context.Context, actor Actor) ([]*domain.Expense, error)
	Create(ctx context.Context, actor Actor, in CreateExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, actor Actor, in UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, actor Actor, id string) error
	ListAll(ctx context.Context) ([]domain.ExpenseDetail, error)
	DeleteAny(ctx context.Context, actor Actor, id string) error
	// Export writes matching transactions as CSV to w.
	Export(ctx context.Context, actor Actor, q ExportQuery, w io.Writer) error
}
