package domain

import "errors"

// Kind classifies a domain error so the transport layer can pick a status
// code without knowing every individual error value.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
)

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation returns an ad-hoc validation error, e.g. for field-level checks.
func Validation(msg string) error { return newError(KindValidation, msg) }

// KindOf reports the Kind of err, or KindInternal for errors that are not
// domain errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Session errors.
var (
	ErrDuplicateEmail      = newError(KindConflict, "user already exists")
	ErrInvalidCredentials  = newError(KindAuth, "invalid email or password")
	ErrPasswordTooLong     = newError(KindValidation, "password must be at most 72 bytes")
	ErrAccountInactive     = newError(KindAuth, "user is not active")
	ErrAccountDeleted      = newError(KindAuth, "user deleted")
	ErrUnauthorized        = newError(KindAuth, "not authorized, no token")
	ErrInvalidToken        = newError(KindAuth, "not authorized, token failed")
	ErrInvalidRefreshToken = newError(KindForbidden, "invalid refresh token")
	ErrForbidden           = newError(KindForbidden, "access forbidden")
	ErrRateLimited         = newError(KindRateLimited, "rate limit exceeded, please try again later")
)

// Resource errors.
var (
	ErrUserNotFound          = newError(KindNotFound, "user not found")
	ErrCannotDeleteAdmin     = newError(KindValidation, "cannot delete admin")
	ErrUserAlreadyDeleted    = newError(KindValidation, "user already deleted")
	ErrCategoryNotFound      = newError(KindNotFound, "category not found")
	ErrCategoryExists        = newError(KindConflict, "category already exists")
	ErrExpenseNotFound       = newError(KindNotFound, "expense not found")
	ErrExpenseNotOwned       = newError(KindAuth, "user not authorized")
	ErrExpenseDeleted        = newError(KindValidation, "cannot update deleted expense")
	ErrExpenseAlreadyDeleted = newError(KindValidation, "expense is already deleted")
)
