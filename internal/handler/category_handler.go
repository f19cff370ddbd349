package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pomodoros/internal/service"
)

// CategoryHandler serves /categories.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CategoryRequest names a category.
type CategoryRequest struct {
	CategoryName string `json:"category_name" form:"category_name" validate:"required,max=255"`
}

// Create godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories/ [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), user.UserID, req.CategoryName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories/ [get]
func (h *CategoryHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	list, err := h.svc.List(c.Request().Context(), user.UserID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	category, err := h.svc.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Rename godoc
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Rename(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.svc.Rename(c.Request().Context(), user.UserID, id, req.CategoryName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} DeleteResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Delete(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return deleted(c, res)
}
