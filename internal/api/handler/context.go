package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/api/middleware"
	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware. A missing
// actor means the route was mounted without Auth.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor, ok := c.Get(middleware.ActorKey).(ports.Actor)
	if !ok || actor.UserID == "" {
		return ports.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

// bindAndValidate decodes the request into req and runs the registered
// validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidPayload
	}
	return c.Validate(req)
}
