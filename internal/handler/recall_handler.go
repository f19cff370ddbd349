package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pomodoros/internal/service"
)

// RecallProjectHandler serves /recall_projects.
type RecallProjectHandler struct {
	svc service.RecallProjectService
}

// NewRecallProjectHandler creates a recall project handler.
func NewRecallProjectHandler(svc service.RecallProjectService) *RecallProjectHandler {
	return &RecallProjectHandler{svc: svc}
}

// RecallProjectRequest names a notes folder.
type RecallProjectRequest struct {
	ProjectName string `json:"project_name" form:"project_name" validate:"required,max=255"`
}

// Create godoc
// @Summary Create recall project
// @Tags recall_projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecallProjectRequest true "Folder"
// @Success 201 {object} model.RecallProject
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /recall_projects/ [post]
func (h *RecallProjectHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req RecallProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), user.UserID, req.ProjectName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List recall projects
// @Tags recall_projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.RecallProject
// @Router /recall_projects/ [get]
func (h *RecallProjectHandler) List(c echo.Context) error {
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
// @Summary Get recall project
// @Tags recall_projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall project ID"
// @Success 200 {object} model.RecallProject
// @Failure 404 {object} errors.ErrorResponse
// @Router /recall_projects/{id} [get]
func (h *RecallProjectHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	folder, err := h.svc.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, folder)
}

// Rename godoc
// @Summary Rename recall project
// @Tags recall_projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall project ID"
// @Param request body RecallProjectRequest true "Folder"
// @Success 200 {object} model.RecallProject
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /recall_projects/{id} [put]
func (h *RecallProjectHandler) Rename(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req RecallProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	folder, err := h.svc.Rename(c.Request().Context(), user.UserID, id, req.ProjectName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, folder)
}

// Delete godoc
// @Summary Delete recall project
// @Description Recalls inside the folder are kept; see DELETE /recall_projects/{id}/recalls.
// @Tags recall_projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall project ID"
// @Success 200 {object} DeleteResponse
// @Router /recall_projects/{id} [delete]
func (h *RecallProjectHandler) Delete(c echo.Context) error {
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

// DeleteRecalls godoc
// @Summary Delete every recall in a recall project
// @Tags recall_projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall project ID"
// @Success 200 {object} DeleteResponse
// @Router /recall_projects/{id}/recalls [delete]
func (h *RecallProjectHandler) DeleteRecalls(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := h.svc.DeleteRecalls(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return deleted(c, res)
}

// RecallHandler serves /recalls.
type RecallHandler struct {
	svc service.RecallService
}

// NewRecallHandler creates a recall handler.
func NewRecallHandler(svc service.RecallService) *RecallHandler {
	return &RecallHandler{svc: svc}
}

// CreateRecallRequest stores a note in a folder.
type CreateRecallRequest struct {
	RecallProjectID int64  `json:"recall_project_id" form:"recall_project_id" validate:"required,gt=0"`
	RecallTitle     string `json:"recall_title" form:"recall_title" validate:"required,max=255"`
	Recall          string `json:"recall" form:"recall"`
}

// UpdateRecallRequest replaces a note's title and body.
type UpdateRecallRequest struct {
	RecallTitle string `json:"recall_title" form:"recall_title" validate:"required,max=255"`
	Recall      string `json:"recall" form:"recall"`
}

// Create godoc
// @Summary Create recall
// @Tags recalls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecallRequest true "Recall"
// @Success 201 {object} model.RecallRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recalls/ [post]
func (h *RecallHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req CreateRecallRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), user.UserID, service.RecallInput{
		RecallProjectID: req.RecallProjectID,
		Title:           req.RecallTitle,
		Body:            req.Recall,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List recalls
// @Tags recalls
// @Produce json
// @Security BearerAuth
// @Param recall_project_id query int false "Recall project ID"
// @Success 200 {array} model.RecallRow
// @Failure 400 {object} errors.ErrorResponse
// @Router /recalls/ [get]
func (h *RecallHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var folderID int64
	if err := echo.QueryParamsBinder(c).Int64("recall_project_id", &folderID).BindError(); err != nil {
		return invalid("recall_project_id must be an integer")
	}
	list, err := h.svc.List(c.Request().Context(), user.UserID, folderID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get recall
// @Tags recalls
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall ID"
// @Success 200 {object} model.RecallRow
// @Failure 404 {object} errors.ErrorResponse
// @Router /recalls/{id} [get]
func (h *RecallHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	recall, err := h.svc.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, recall)
}

// Update godoc
// @Summary Update recall
// @Tags recalls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall ID"
// @Param request body UpdateRecallRequest true "Recall"
// @Success 200 {object} model.RecallRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recalls/{id} [put]
func (h *RecallHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateRecallRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	recall, err := h.svc.Update(c.Request().Context(), user.UserID, id, req.RecallTitle, req.Recall)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, recall)
}

// Delete godoc
// @Summary Delete recall
// @Tags recalls
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recall ID"
// @Success 200 {object} DeleteResponse
// @Router /recalls/{id} [delete]
func (h *RecallHandler) Delete(c echo.Context) error {
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
