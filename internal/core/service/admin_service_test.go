package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

func newAdminSvc(cache ports.AnalyticsCache) (*AdminService, *stubUserRepo, *stubExpenseRepo, *stubAuditRepo) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()
	recorder, auditRepo := newRecorder()
	return NewAdminService(users, expenses, cache, recorder, nopLog), users, expenses, auditRepo
}

func TestAdminService_SoftDeleteUser(t *testing.T) {
	svc, users, _, audit := newAdminSvc(nil)
	users.put(&domain.User{ID: "u1", Email: "u@x.com", Role: domain.RoleUser, IsActive: true, RefreshToken: "tok"})

	if err := svc.SoftDeleteUser(context.Background(), testAdmin, "u1"); err != nil {
		t.Fatalf("SoftDeleteUser: %v", err)
	}

	u, _ := users.FindByID(context.Background(), "u1")
	if u.IsActive || u.DeletedAt == nil || u.RefreshToken != "" {
		t.Fatalf("expected deactivated user without session, got %+v", u)
	}
	entry := audit.last()
	if entry.Action != domain.AuditDelete || entry.Entity != domain.EntityUser || entry.Metadata["userEmail"] != "u@x.com" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}

	if err := svc.SoftDeleteUser(context.Background(), testAdmin, "u1"); !errors.Is(err, domain.ErrUserAlreadyDeleted) {
		t.Fatalf("expected ErrUserAlreadyDeleted, got %v", err)
	}
}

func TestAdminService_SoftDeleteUser_RejectsAdminTarget(t *testing.T) {
	svc, users, _, _ := newAdminSvc(nil)
	users.put(&domain.User{ID: "a2", Role: domain.RoleAdmin, IsActive: true})

	err := svc.SoftDeleteUser(context.Background(), testAdmin, "a2")
	if !errors.Is(err, domain.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation kind, got %v", domain.KindOf(err))
	}
}

func TestAdminService_SoftDeleteUser_NotFound(t *testing.T) {
	svc, _, _, _ := newAdminSvc(nil)

	if err := svc.SoftDeleteUser(context.Background(), testAdmin, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// An admin soft-delete followed by a login with the right password fails.
func TestAdminService_SoftDeletedUserCannotLogin(t *testing.T) {
	users := newStubUserRepo()
	recorder, _ := newRecorder()
	auth := NewAuthService(users, newTestTokens(t), recorder, nil, nopLog)
	admin := NewAdminService(users, newStubExpenseRepo(), nil, recorder, nopLog)
	ctx := context.Background()

	reg, err := auth.Register(ctx, ports.RegisterInput{Name: "U", Email: "u@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := admin.SoftDeleteUser(ctx, testAdmin, reg.User.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err = auth.Login(ctx, ports.LoginInput{Email: "u@x.com", Password: "pw123456"})
	if !errors.Is(err, domain.ErrAccountDeleted) {
		t.Fatalf("expected ErrAccountDeleted, got %v", err)
	}
	if _, err := auth.Refresh(ctx, reg.RefreshToken); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected the deleted user's session to be gone, got %v", err)
	}
}

func TestAdminService_Analytics_ReadThroughCache(t *testing.T) {
	cache := &stubAnalyticsCache{}
	svc, _, expenses, _ := newAdminSvc(cache)
	expenses.analytics = &domain.Analytics{TotalExpenses: 120}

	first, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if first.TotalExpenses != 120 || first.CategoryWiseTotals == nil || first.TopSpendingUsers == nil {
		t.Fatalf("unexpected analytics: %+v", first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected result to be cached, sets=%d", cache.sets)
	}

	if _, err := svc.Analytics(context.Background()); err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if expenses.analyticsN != 1 {
		t.Fatalf("expected second call to be served from cache, computed %d times", expenses.analyticsN)
	}
}

func TestAdminService_Analytics_CacheErrorFallsThrough(t *testing.T) {
	cache := &stubAnalyticsCache{getErr: errStoreDown}
	svc, _, expenses, _ := newAdminSvc(cache)
	expenses.analytics = &domain.Analytics{TotalExpenses: 7}

	a, err := svc.Analytics(context.Background())
	if err != nil || a.TotalExpenses != 7 {
		t.Fatalf("expected computed analytics, got %+v / %v", a, err)
	}
}

func TestAdminService_RefreshAnalytics(t *testing.T) {
	cache := &stubAnalyticsCache{value: &domain.Analytics{TotalExpenses: 1}}
	svc, _, expenses, _ := newAdminSvc(cache)
	expenses.analytics = &domain.Analytics{TotalExpenses: 2}

	if err := svc.RefreshAnalytics(context.Background()); err != nil {
		t.Fatalf("RefreshAnalytics: %v", err)
	}
	if cache.value.TotalExpenses != 2 {
		t.Fatalf("expected cache to be overwritten, got %+v", cache.value)
	}

	expenses.analyticsErr = errStoreDown
	if err := svc.RefreshAnalytics(context.Background()); err == nil {
		t.Fatalf("expected error from failed aggregation")
	}
}
