package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

func runRBAC(role string, roles ...domain.Role) (bool, error) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), httptest.NewRecorder())
	if role != "" {
		c.Set(RoleKey, role)
	}
	reached := false
	err := RBAC(roles...)(func(echo.Context) error {
		reached = true
		return nil
	})(c)
	return reached, err
}

func TestRBAC_AdminPasses(t *testing.T) {
	reached, err := runRBAC("ADMIN", domain.RoleAdmin)
	if err != nil || !reached {
		t.Fatalf("expected ADMIN to pass, reached=%v err=%v", reached, err)
	}
}

func TestRBAC_AnyListedRolePasses(t *testing.T) {
	reached, err := runRBAC("USER", domain.RoleAdmin, domain.RoleUser)
	if err != nil || !reached {
		t.Fatalf("expected USER to pass, reached=%v err=%v", reached, err)
	}
}

func TestRBAC_RejectsOtherRoles(t *testing.T) {
	cases := map[string]string{
		"user role":     "USER",
		"no role":       "",
		"case mismatch": "admin",
	}
	for name, role := range cases {
		t.Run(name, func(t *testing.T) {
			reached, err := runRBAC(role, domain.RoleAdmin)
			if reached {
				t.Fatalf("next handler must not run")
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
