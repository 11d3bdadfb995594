package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

const exportFilename = "expenses.csv"

// ExpenseHandler serves the user and admin transaction routes.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// ListMine handles GET /api/expenses.
//
// @Summary      List my transactions
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Expense
// @Failure      401  {object}  errorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	expenses, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// Create handles POST /api/expenses.
//
// @Summary      Record a transaction
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createExpenseRequest  true  "Transaction"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createExpenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date, false)
	if err != nil {
		return err
	}

	expense, err := h.service.Create(c.Request().Context(), actor, ports.CreateExpenseInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		PaymentType: req.PaymentType,
		Type:        domain.TransactionType(req.Type),
		Date:        date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, expense)
}

// Update handles PUT /api/expenses/:id.
//
// @Summary      Update one of my transactions
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Transaction ID"
// @Param        body  body      updateExpenseRequest  true  "Fields to change"
// @Success      200   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateExpenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date, false)
	if err != nil {
		return err
	}

	expense, err := h.service.Update(c.Request().Context(), actor, ports.UpdateExpenseInput{
		ID:          c.Param("id"),
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		PaymentType: req.PaymentType,
		Type:        domain.TransactionType(req.Type),
		Date:        date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/:id.
//
// @Summary      Delete one of my transactions
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  deleteExpenseResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteExpenseResponse{Message: "expense deleted", ID: id})
}

// ListAll handles GET /api/admin/expenses.
//
// @Summary      List all transactions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ExpenseDetail
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/expenses [get]
func (h *ExpenseHandler) ListAll(c echo.Context) error {
	expenses, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// DeleteAny handles DELETE /api/admin/expenses/:id.
//
// @Summary      Delete any transaction
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  deleteExpenseResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteAny(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.service.DeleteAny(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteExpenseResponse{Message: "expense removed by admin", ID: id})
}

// Export handles GET /api/admin/expenses/export.
//
// @Summary      Export transactions as CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        from        query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to          query     string  false  "End date, inclusive (YYYY-MM-DD)"
// @Param        userId      query     string  false  "Owner filter"
// @Param        categoryId  query     string  false  "Category filter"
// @Success      200         {file}    file
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /api/admin/expenses/export [get]
func (h *ExpenseHandler) Export(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var q exportQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	from, err := parseDate("from", q.From, false)
	if err != nil {
		return err
	}
	to, err := parseDate("to", q.To, true)
	if err != nil {
		return err
	}

	in := ports.ExportQuery{UserID: q.UserID, CategoryID: q.CategoryID}
	if from != nil {
		in.From = *from
	}
	if to != nil {
		in.To = *to
	}

	// Buffer so a failure can still be rendered as a JSON error.
	var buf bytes.Buffer
	if err := h.service.Export(c.Request().Context(), actor, in, &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+exportFilename)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
