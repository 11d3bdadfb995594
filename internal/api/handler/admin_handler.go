package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// AdminHandler serves user management, analytics and the audit trail.
type AdminHandler struct {
	admin ports.AdminService
	audit ports.AuditService
}

func NewAdminHandler(admin ports.AdminService, audit ports.AuditService) *AdminHandler {
	return &AdminHandler{admin: admin, audit: audit}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SoftDeleteUser handles PUT /api/admin/users/:id/soft-delete.
//
// @Summary      Soft-delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/soft-delete [put]
func (h *AdminHandler) SoftDeleteUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.admin.SoftDeleteUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user soft deleted"})
}

// Analytics handles GET /api/admin/analytics.
//
// @Summary      Spending analytics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Analytics
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	summary, err := h.admin.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// AuditLogs handles GET /api/admin/audit-logs.
//
// @Summary      List audit logs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        action       query     string  false  "CREATE, UPDATE, DELETE, LOGIN, LOGOUT or EXPORT"
// @Param        entity       query     string  false  "USER, CATEGORY, EXPENSE or INCOME"
// @Param        performedBy  query     string  false  "User ID"
// @Param        page         query     int     false  "Page, starting at 1"
// @Param        limit        query     int     false  "Page size; 0 returns every entry"
// @Success      200          {object}  auditLogsResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(c echo.Context) error {
	var q auditLogsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page := q.Page
	if q.Limit > 0 && page < 1 {
		page = 1
	}
	logs, err := h.audit.List(c.Request().Context(), ports.AuditFilter{
		Action:      q.Action,
		Entity:      q.Entity,
		PerformedBy: q.PerformedBy,
		Page:        page,
		Limit:       q.Limit,
	})
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []domain.AuditLogView{}
	}
	return c.JSON(http.StatusOK, auditLogsResponse{Page: page, Limit: q.Limit, Logs: logs})
}
