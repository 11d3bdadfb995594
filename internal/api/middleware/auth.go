package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// Context keys set by Auth.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	ActorKey  = "actor"
)

// AccessVerifier validates access tokens.
type AccessVerifier interface {
	VerifyAccess(token string) (*ports.TokenClaims, error)
}

// UserFinder loads the user a token was issued to.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer access token, rejects revoked tokens and users
// who can no longer authenticate, and injects the actor into context.
// denylist may be nil.
func Auth(tokens AccessVerifier, users UserFinder, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrUnauthorized
			}

			claims, err := tokens.VerifyAccess(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			ctx := c.Request().Context()
			if denylist != nil {
				revoked, err := denylist.IsRevoked(ctx, claims.TokenID)
				if err != nil {
					// Fail open: the token is still short-lived and signed.
					log.Warn().Err(err).Msg("denylist lookup failed")
				} else if revoked {
					return domain.ErrInvalidToken
				}
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrInvalidToken
				}
				return err
			}
			if user.IsDeleted() {
				return domain.ErrAccountDeleted
			}
			if !user.IsActive {
				return domain.ErrAccountInactive
			}

			c.Set(UserIDKey, user.ID)
			c.Set(RoleKey, string(user.Role))
			c.Set(ActorKey, ports.Actor{UserID: user.ID, Role: user.Role})

			return next(c)
		}
	}
}
