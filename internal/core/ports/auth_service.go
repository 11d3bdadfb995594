package ports

import (
	"context"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// RegisterInput carries the self-registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IP       string
}

// LoginInput carries user credentials.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// LogoutInput carries whatever session material the client presented.
// Both fields may be empty.
type LogoutInput struct {
	RefreshToken string
	AccessToken  string
	IP           string
}

// AuthResult is returned by register and login. RefreshToken goes into the
// HTTP-only cookie and never into a response body.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// TokenPair is returned by a successful refresh rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService is the session lifecycle: register, login, logout, refresh.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Logout never fails; the client session always terminates.
	Logout(ctx context.Context, in LogoutInput)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
