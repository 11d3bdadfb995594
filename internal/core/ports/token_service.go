package ports

import (
	"context"
	"time"
)

// TokenClaims is the subject information carried by access and refresh tokens.
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and validates the two token kinds. Access and refresh
// tokens are signed with distinct secrets.
type TokenService interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
	// DecodeUnsafe reads claims without checking the signature or expiry.
	// Callers must never base an authorization decision on the result.
	DecodeUnsafe(token string) *TokenClaims
}

// TokenDenylist holds revoked access tokens until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
