package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// CategoryHandler serves the user and admin category routes.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListActive handles GET /api/categories.
//
// @Summary      List active categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        type  query     string  false  "income or expense"
// @Success      200   {array}   domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) ListActive(c echo.Context) error {
	var q listCategoriesQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	categories, err := h.service.ListActive(c.Request().Context(), domain.TransactionType(q.Type))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateByUser(c.Request().Context(), actor, ports.CreateCategoryInput{
		Name: req.Name,
		Type: domain.TransactionType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// ListAll handles GET /api/admin/categories.
//
// @Summary      List all categories
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Category
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/categories [get]
func (h *CategoryHandler) ListAll(c echo.Context) error {
	categories, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// AdminCreate handles POST /api/admin/categories.
//
// @Summary      Create a category as admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/categories [post]
func (h *CategoryHandler) AdminCreate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateByAdmin(c.Request().Context(), actor, ports.CreateCategoryInput{
		Name: req.Name,
		Type: domain.TransactionType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/admin/categories/:id.
//
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.Update(c.Request().Context(), actor, ports.UpdateCategoryInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category removed"})
}
