package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
	"github.com/ledgerly/expense-tracker/internal/pkg/metrics"
)

// AuthService implements the session lifecycle on top of the user store,
// the token service and the audit recorder.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	audit    ports.AuditRecorder
	denylist ports.TokenDenylist
	log      zerolog.Logger
}

// NewAuthService returns an AuthService. denylist may be nil, in which case
// logout does not revoke access tokens.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	audit ports.AuditRecorder,
	denylist ports.TokenDenylist,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, denylist: denylist, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Validation("invalid user data")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditCreate,
		Entity:   domain.EntityUser,
		EntityID: idRef(user.ID),
		Actor:    ports.Actor{UserID: user.ID, Role: user.Role},
		Metadata: map[string]any{"ip": in.IP},
	})

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Validation("please provide email and password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same bcrypt cost as a real mismatch.
			CheckPassword(in.Password, string(dummyHash))
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !CheckPassword(in.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	// Lifecycle flags are only revealed after the password matched.
	if user.IsDeleted() {
		metrics.LoginsTotal.WithLabelValues("deleted").Inc()
		return nil, domain.ErrAccountDeleted
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrAccountInactive
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditLogin,
		Entity:   domain.EntityUser,
		EntityID: idRef(user.ID),
		Actor:    ports.Actor{UserID: user.ID, Role: user.Role},
		Metadata: map[string]any{"ip": in.IP},
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return result, nil
}

// Logout closes whatever session the presented material points at. It never
// fails: every error is logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, in ports.LogoutInput) {
	s.revokeAccess(ctx, in.AccessToken)

	if in.RefreshToken == "" {
		return
	}

	// Unverified decode: the subject is only used to find the record whose
	// stored token gets cleared.
	claims := s.tokens.DecodeUnsafe(in.RefreshToken)
	if claims == nil {
		return
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("logout: user lookup failed")
		}
		return
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, ""); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("logout: failed to clear refresh token")
		return
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditLogout,
		Entity:   domain.EntityUser,
		EntityID: idRef(user.ID),
		Actor:    ports.Actor{UserID: user.ID, Role: user.Role},
		Metadata: map[string]any{"ip": in.IP},
	})
}

// Refresh rotates the session: the presented token must verify and be the
// exact token stored for its user, after which both tokens are replaced.
//
// The compare and the write are separate store calls, so two concurrent
// refreshes with the same valid token can both pass the match check.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RefreshTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: lookup user: %w", err)
	}

	if user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		metrics.RefreshTotal.WithLabelValues("reused").Inc()
		s.log.Warn().Str("user_id", user.ID).Msg("refresh token does not match stored session")
		return nil, domain.ErrInvalidRefreshToken
	}
	if !user.CanAuthenticate() {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	metrics.RefreshTotal.WithLabelValues("rotated").Inc()
	return &ports.TokenPair{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}, nil
}

// openSession issues a fresh token pair and stores the refresh token,
// replacing any previous session of the user.
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	user.RefreshToken = refresh
	return &ports.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) revokeAccess(ctx context.Context, accessToken string) {
	if s.denylist == nil || accessToken == "" {
		return
	}
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil || claims.TokenID == "" {
		return
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		s.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("logout: failed to revoke access token")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
