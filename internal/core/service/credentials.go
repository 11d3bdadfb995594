package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

// dummyHash is compared against when a login names an unknown email, so both
// failure paths pay the same bcrypt cost.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// HashPassword returns a salted bcrypt digest of plain. Passwords longer
// than bcrypt's 72-byte input limit yield domain.ErrPasswordTooLong.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the bcrypt digest.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
