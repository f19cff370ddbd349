package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"pomodoros/internal/model"
	"pomodoros/internal/repository"
	"pomodoros/internal/service"
)

// ProjectHandler serves /projects.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProjectRequest starts a project in a category.
type CreateProjectRequest struct {
	CategoryID  int64  `json:"category_id" form:"category_id" validate:"required,gt=0"`
	ProjectName string `json:"project_name" form:"project_name" validate:"required,max=255"`
}

// RenameProjectRequest renames a project.
type RenameProjectRequest struct {
	ProjectName string `json:"project_name" form:"project_name" validate:"required,max=255"`
}

// Create godoc
// @Summary Create project
// @Description The category must belong to the caller. The start date is today.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project"
// @Success 201 {object} model.ProjectRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/ [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req CreateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	project, err := h.svc.Create(c.Request().Context(), user.UserID, req.CategoryID, req.ProjectName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// List godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param category_id query int false "Category ID"
// @Param status query string false "open or closed"
// @Success 200 {array} model.ProjectRow
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects/ [get]
func (h *ProjectHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var filter repository.ProjectFilter
	var status string
	if err := echo.QueryParamsBinder(c).
		Int64("category_id", &filter.CategoryID).
		String("status", &status).
		BindError(); err != nil {
		return invalid("category_id must be an integer")
	}
	filter.Status = model.ProjectStatus(status)

	list, err := h.svc.List(c.Request().Context(), user.UserID, filter)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.ProjectRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	return h.withProject(c, h.svc.Get)
}

// End godoc
// @Summary Mark project finished today
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.ProjectRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/end [put]
func (h *ProjectHandler) End(c echo.Context) error {
	return h.withProject(c, h.svc.End)
}

// Cancel godoc
// @Summary Mark project canceled today
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.ProjectRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/canceled [put]
func (h *ProjectHandler) Cancel(c echo.Context) error {
	return h.withProject(c, h.svc.Cancel)
}

// Rename godoc
// @Summary Rename project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body RenameProjectRequest true "Name"
// @Success 200 {object} model.ProjectRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/name [put]
func (h *ProjectHandler) Rename(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req RenameProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	project, err := h.svc.Rename(c.Request().Context(), user.UserID, id, req.ProjectName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} DeleteResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
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

func (h *ProjectHandler) withProject(c echo.Context, op func(ctx context.Context, userID string, id int64) (*model.ProjectRow, error)) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	project, err := op(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}
