package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

func TestCategoryHandler_Create_UsesActor(t *testing.T) {
	stub := &stubCategoryService{
		createFn: func(actor ports.Actor, in ports.CreateCategoryInput) (*domain.Category, error) {
			if actor != userActor || in.Name != "Food" || in.Type != domain.TypeExpense {
				t.Fatalf("unexpected call: %+v %+v", actor, in)
			}
			return &domain.Category{ID: "c1", Name: in.Name, Type: in.Type, CreatedBy: actor.UserID}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/categories", `{"name":"Food","type":"expense"}`, userActor)

	if err := NewCategoryHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCategoryHandler_Create_RequiresActor(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/categories", `{"name":"Food"}`, ports.Actor{})
	if err := NewCategoryHandler(&stubCategoryService{}).Create(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCategoryHandler_ListActive_RejectsUnknownType(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/categories?type=savings", "", userActor)
	err := NewCategoryHandler(&stubCategoryService{}).ListActive(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCategoryHandler_Update_PassesPartialFields(t *testing.T) {
	stub := &stubCategoryService{
		updateFn: func(actor ports.Actor, in ports.UpdateCategoryInput) (*domain.Category, error) {
			if in.ID != "c1" || in.Name != "" || in.IsActive == nil || *in.IsActive {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Category{ID: "c1"}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/admin/categories/c1", `{"isActive":false}`, adminActor)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := NewCategoryHandler(stub).Update(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, err)
	}
}

func TestExpenseHandler_Create_ParsesDate(t *testing.T) {
	stub := &stubExpenseService{
		createFn: func(actor ports.Actor, in ports.CreateExpenseInput) (*domain.Expense, error) {
			if in.Date == nil || !in.Date.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected date: %v", in.Date)
			}
			return &domain.Expense{ID: "e1", UserID: actor.UserID, Amount: in.Amount}, nil
		},
	}
	body := `{"amount":12.5,"categoryId":"c1","description":"lunch","paymentType":"card","date":"2024-03-09"}`
	c, rec := newContext(http.MethodPost, "/api/expenses", body, userActor)

	if err := NewExpenseHandler(stub).Create(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", rec.Code, err)
	}
}

func TestExpenseHandler_Create_BadDate(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/expenses", `{"amount":1,"date":"yesterday"}`, userActor)
	err := NewExpenseHandler(&stubExpenseService{}).Create(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExpenseHandler_Delete_NotOwner(t *testing.T) {
	stub := &stubExpenseService{
		deleteFn: func(actor ports.Actor, id string) error { return domain.ErrExpenseNotOwned },
	}
	c, _ := newContext(http.MethodDelete, "/api/expenses/e1", "", userActor)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := NewExpenseHandler(stub).Delete(c); !errors.Is(err, domain.ErrExpenseNotOwned) {
		t.Fatalf("expected ErrExpenseNotOwned, got %v", err)
	}
}

func TestExpenseHandler_Export(t *testing.T) {
	stub := &stubExpenseService{
		exportFn: func(actor ports.Actor, q ports.ExportQuery, w io.Writer) error {
			if q.From != time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) {
				t.Fatalf("unexpected from: %v", q.From)
			}
			if q.To != time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC) {
				t.Fatalf("to must cover the whole day: %v", q.To)
			}
			if q.UserID != "u1" {
				t.Fatalf("unexpected user filter: %q", q.UserID)
			}
			_, err := io.WriteString(w, "Date,User\n2024-01-02,Alice\n")
			return err
		},
	}
	c, rec := newContext(http.MethodGet, "/api/admin/expenses/export?from=2024-01-01&to=2024-01-31&userId=u1", "", adminActor)

	if err := NewExpenseHandler(stub).Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=expenses.csv" {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Alice") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestExpenseHandler_Export_FailureIsNotCommitted(t *testing.T) {
	stub := &stubExpenseService{
		exportFn: func(actor ports.Actor, q ports.ExportQuery, w io.Writer) error {
			_, _ = io.WriteString(w, "Date,User\n")
			return domain.Validation("'to' must not be before 'from'")
		},
	}
	c, _ := newContext(http.MethodGet, "/api/admin/expenses/export", "", adminActor)

	if err := NewExpenseHandler(stub).Export(c); err == nil {
		t.Fatalf("expected error")
	}
	if c.Response().Committed {
		t.Fatalf("partial CSV must not be written on failure")
	}
}

func TestAdminHandler_SoftDeleteUser(t *testing.T) {
	stub := &stubAdminService{
		softDeleteFn: func(actor ports.Actor, id string) error {
			if id == "admin" {
				return domain.ErrCannotDeleteAdmin
			}
			return nil
		},
	}
	h := NewAdminHandler(stub, &stubAuditService{})

	c, rec := newContext(http.MethodPut, "/api/admin/users/u2/soft-delete", "", adminActor)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	if err := h.SoftDeleteUser(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, err)
	}

	c, _ = newContext(http.MethodPut, "/api/admin/users/admin/soft-delete", "", adminActor)
	c.SetParamNames("id")
	c.SetParamValues("admin")
	if err := h.SoftDeleteUser(c); !errors.Is(err, domain.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
}

func TestAdminHandler_Analytics(t *testing.T) {
	stub := &stubAdminService{analytics: &domain.Analytics{
		TotalExpenses:         42,
		CategoryWiseTotals:    []domain.CategoryTotal{{Category: "Food", Total: 42, Count: 2}},
		MonthlySpendingTrends: []domain.MonthlyTotal{},
		TopSpendingUsers:      []domain.UserSpending{},
	}}
	c, rec := newContext(http.MethodGet, "/api/admin/analytics", "", adminActor)

	if err := NewAdminHandler(stub, &stubAuditService{}).Analytics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["totalExpenses"] != 42.0 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminHandler_AuditLogs_Filters(t *testing.T) {
	audit := &stubAuditService{}
	c, rec := newContext(http.MethodGet, "/api/admin/audit-logs?action=LOGIN&performedBy=u1&limit=20", "", adminActor)

	if err := NewAdminHandler(&stubAdminService{}, audit).AuditLogs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.AuditFilter{Action: "LOGIN", PerformedBy: "u1", Page: 1, Limit: 20}
	if audit.lastFilter != want {
		t.Fatalf("unexpected filter: %+v", audit.lastFilter)
	}
	if !strings.Contains(rec.Body.String(), `"logs":[]`) {
		t.Fatalf("expected an empty list, got %s", rec.Body.String())
	}
}

func TestAdminHandler_AuditLogs_RejectsUnknownAction(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/admin/audit-logs?action=DROP", "", adminActor)
	err := NewAdminHandler(&stubAdminService{}, &stubAuditService{}).AuditLogs(c)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
