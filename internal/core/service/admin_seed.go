package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// AdminSeed describes the bootstrap admin account.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// SeedAdmin creates the bootstrap admin unless a user with that email
// already exists. An existing account is never modified, whatever its role.
func SeedAdmin(ctx context.Context, users ports.UserRepository, seed AdminSeed, log zerolog.Logger) (bool, error) {
	email := normalizeEmail(seed.Email)
	if email == "" || seed.Password == "" {
		return false, domain.Validation("admin email and password are required")
	}

	if existing, err := users.FindByEmail(ctx, email); err == nil {
		if existing.Role != domain.RoleAdmin {
			log.Warn().Str("email", email).Msg("bootstrap admin email belongs to a non-admin user")
		}
		return false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("seed admin: lookup: %w", err)
	}

	hash, err := HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("seed admin: hash password: %w", err)
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = "Super Admin"
	}
	now := time.Now().UTC()
	admin, err := users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Another instance won the race.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return false, nil
		}
		return false, fmt.Errorf("seed admin: create: %w", err)
	}

	log.Info().Str("user_id", admin.ID).Msg("bootstrap admin created")
	return true, nil
}
