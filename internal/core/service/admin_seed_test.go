package service

import (
	"context"
	"strings"
	"testing"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	users := newStubUserRepo()
	seed := AdminSeed{Name: "Root", Email: " Admin@Example.com ", Password: "s3cret!"}

	created, err := SeedAdmin(context.Background(), users, seed, nopLog)
	if err != nil || !created {
		t.Fatalf("expected the admin to be created, got %v %v", created, err)
	}

	admin, err := users.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if admin.Role != domain.RoleAdmin || !admin.IsActive || !CheckPassword("s3cret!", admin.PasswordHash) {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	created, err = SeedAdmin(context.Background(), users, seed, nopLog)
	if err != nil || created {
		t.Fatalf("second seed must be a no-op, got %v %v", created, err)
	}
}

func TestSeedAdmin_RequiresCredentials(t *testing.T) {
	_, err := SeedAdmin(context.Background(), newStubUserRepo(), AdminSeed{Email: "admin@example.com"}, nopLog)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedAdmin_AdminCanLogIn(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := SeedAdmin(context.Background(), f.users, AdminSeed{Email: "admin@example.com", Password: "s3cret!"}, nopLog); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}

	res, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", res.User.Role)
	}
}

func TestSeedAdmin_PasswordOverBcryptLimit(t *testing.T) {
	seed := AdminSeed{Email: "admin@example.com", Password: strings.Repeat("p", 73)}
	created, err := SeedAdmin(context.Background(), newStubUserRepo(), seed, nopLog)
	if created || domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v %v", created, err)
	}
}
