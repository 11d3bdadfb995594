package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body.Message
}

func TestHTTPErrorHandler_DomainKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.Validation("please add all fields"), http.StatusBadRequest},
		{domain.ErrDuplicateEmail, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountDeleted, http.StatusUnauthorized},
		{domain.ErrInvalidRefreshToken, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrExpenseNotFound, http.StatusNotFound},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", domain.ErrUserNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		code, msg := render(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg == "" {
			t.Fatalf("%v: expected a message", tc.err)
		}
	}
}

func TestHTTPErrorHandler_WrappedKeepsDomainMessage(t *testing.T) {
	_, msg := render(t, fmt.Errorf("update: %w", domain.ErrExpenseNotOwned))
	if msg != domain.ErrExpenseNotOwned.Message {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := render(t, errors.New("mongo: connection refused on 10.0.0.3"))
	if code != http.StatusInternalServerError || msg != "internal server error" {
		t.Fatalf("expected opaque 500, got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("unexpected result: %d %q", code, msg)
	}
}
