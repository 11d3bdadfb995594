package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig holds the signing material for both token kinds.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// claims is the JWT payload. ID (jti) is random per token so that two tokens
// minted for the same user within one second still differ.
type claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and validates access and refresh tokens (HS256).
type TokenService struct {
	cfg    TokenConfig
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token service: access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token service: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		cfg:    cfg,
		now:    time.Now,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// RefreshTTL is the lifetime of refresh tokens, which the transport layer
// also uses as the cookie max-age.
func (s *TokenService) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }

func (s *TokenService) IssueAccess(userID string) (string, error) {
	return s.sign(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
}

func (s *TokenService) IssueRefresh(userID string) (string, error) {
	return s.sign(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
}

func (s *TokenService) VerifyAccess(token string) (*ports.TokenClaims, error) {
	return s.verify(token, s.cfg.AccessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (*ports.TokenClaims, error) {
	return s.verify(token, s.cfg.RefreshSecret)
}

func (s *TokenService) DecodeUnsafe(token string) *ports.TokenClaims {
	var c claims
	if _, _, err := s.parser.ParseUnverified(token, &c); err != nil {
		return nil
	}
	if c.UserID == "" {
		return nil
	}
	return toTokenClaims(&c)
}

func (s *TokenService) sign(userID, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) verify(token, secret string) (*ports.TokenClaims, error) {
	var c claims
	parsed, err := s.parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid || c.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return toTokenClaims(&c), nil
}

func toTokenClaims(c *claims) *ports.TokenClaims {
	tc := &ports.TokenClaims{UserID: c.UserID, TokenID: c.ID}
	if c.ExpiresAt != nil {
		tc.ExpiresAt = c.ExpiresAt.Time
	}
	return tc
}
