package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/api/middleware"
	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

var (
	userActor  = ports.Actor{UserID: "u1", Role: domain.RoleUser}
	adminActor = ports.Actor{UserID: "a1", Role: domain.RoleAdmin}
)

// newContext builds an Echo context for a JSON request. A non-zero actor is
// injected the way the Auth middleware does.
func newContext(method, target, body string, actor ports.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor.UserID != "" {
		c.Set(middleware.ActorKey, actor)
	}
	return c, rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, token string) (*ports.TokenPair, error)
	logouts    []ports.LogoutInput
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Logout(_ context.Context, in ports.LogoutInput) {
	s.logouts = append(s.logouts, in)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

type stubCategoryService struct {
	ports.CategoryService
	listActiveFn func(typ domain.TransactionType) ([]*domain.Category, error)
	createFn     func(actor ports.Actor, in ports.CreateCategoryInput) (*domain.Category, error)
	updateFn     func(actor ports.Actor, in ports.UpdateCategoryInput) (*domain.Category, error)
}

func (s *stubCategoryService) ListActive(_ context.Context, typ domain.TransactionType) ([]*domain.Category, error) {
	return s.listActiveFn(typ)
}

func (s *stubCategoryService) CreateByUser(_ context.Context, actor ports.Actor, in ports.CreateCategoryInput) (*domain.Category, error) {
	return s.createFn(actor, in)
}

func (s *stubCategoryService) Update(_ context.Context, actor ports.Actor, in ports.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(actor, in)
}

type stubExpenseService struct {
	ports.ExpenseService
	createFn func(actor ports.Actor, in ports.CreateExpenseInput) (*domain.Expense, error)
	deleteFn func(actor ports.Actor, id string) error
	exportFn func(actor ports.Actor, q ports.ExportQuery, w io.Writer) error
}

func (s *stubExpenseService) Create(_ context.Context, actor ports.Actor, in ports.CreateExpenseInput) (*domain.Expense, error) {
	return s.createFn(actor, in)
}

func (s *stubExpenseService) Delete(_ context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(actor, id)
}

func (s *stubExpenseService) Export(_ context.Context, actor ports.Actor, q ports.ExportQuery, w io.Writer) error {
	return s.exportFn(actor, q, w)
}

type stubAdminService struct {
	ports.AdminService
	softDeleteFn func(actor ports.Actor, id string) error
	analytics    *domain.Analytics
}

func (s *stubAdminService) SoftDeleteUser(_ context.Context, actor ports.Actor, id string) error {
	return s.softDeleteFn(actor, id)
}

func (s *stubAdminService) Analytics(context.Context) (*domain.Analytics, error) {
	return s.analytics, nil
}

type stubAuditService struct {
	ports.AuditService
	lastFilter ports.AuditFilter
	logs       []domain.AuditLogView
}

func (s *stubAuditService) List(_ context.Context, f ports.AuditFilter) ([]domain.AuditLogView, error) {
	s.lastFilter = f
	return s.logs, nil
}
