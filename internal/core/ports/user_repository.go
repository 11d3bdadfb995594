package ports

import (
	"context"
	"time"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID. A duplicate
	// email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// SetRefreshToken overwrites the stored rotation token. An empty token
	// closes the session.
	SetRefreshToken(ctx context.Context, id, token string) error
	// SoftDelete deactivates the user, stamps deletedAt and clears the
	// stored refresh token.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
