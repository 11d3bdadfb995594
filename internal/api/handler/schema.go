package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// messageResponse is the body of operations that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	AccessToken string      `json:"accessToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// --- Categories ---

type listCategoriesQuery struct {
	Type string `query:"type" validate:"omitempty,oneof=income expense"`
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"omitempty,oneof=income expense"`
}

type updateCategoryRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive"`
}

// --- Expenses ---

// createExpenseRequest leaves presence checks to the service so that a
// missing field yields a single "please add all fields" message.
type createExpenseRequest struct {
	Amount      float64 `json:"amount"      validate:"gte=0"`
	CategoryID  string  `json:"categoryId"`
	Description string  `json:"description"`
	PaymentType string  `json:"paymentType"`
	Type        string  `json:"type"        validate:"omitempty,oneof=income expense"`
	Date        string  `json:"date"`
}

type updateExpenseRequest struct {
	Amount      float64 `json:"amount"      validate:"gte=0"`
	CategoryID  string  `json:"categoryId"`
	Description string  `json:"description"`
	PaymentType string  `json:"paymentType"`
	Type        string  `json:"type"        validate:"omitempty,oneof=income expense"`
	Date        string  `json:"date"`
}

type exportQuery struct {
	From       string `query:"from"`
	To         string `query:"to"`
	UserID     string `query:"userId"`
	CategoryID string `query:"categoryId"`
}

type deleteExpenseResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// --- Admin ---

type auditLogsQuery struct {
	Action      string `query:"action"      validate:"omitempty,oneof=CREATE UPDATE DELETE LOGIN LOGOUT EXPORT"`
	Entity      string `query:"entity"      validate:"omitempty,oneof=USER CATEGORY EXPENSE INCOME"`
	PerformedBy string `query:"performedBy"`
	Page        int    `query:"page"        validate:"gte=0"`
	Limit       int    `query:"limit"       validate:"gte=0,lte=500"`
}

type auditLogsResponse struct {
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Logs  []domain.AuditLogView `json:"logs"`
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// An empty value yields nil. endOfDay moves a calendar date to its last
// instant so that date-only upper bounds are inclusive.
func parseDate(field, value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, domain.Validation(field + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}
