package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pomodoros/internal/repository"
	"pomodoros/internal/service"
)

// PomodoroHandler serves /pomodoros.
type PomodoroHandler struct {
	svc service.PomodoroService
}

// NewPomodoroHandler creates a pomodoro handler.
func NewPomodoroHandler(svc service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{svc: svc}
}

// CreatePomodoroRequest records a finished work session in minutes.
type CreatePomodoroRequest struct {
	ProjectID  int64 `json:"project_id" form:"project_id" validate:"required,gt=0"`
	CategoryID int64 `json:"category_id" form:"category_id" validate:"required,gt=0"`
	Duration   int   `json:"duration" form:"duration" validate:"required,gte=25"`
}

// SatisfactionRequest rates a pomodoro.
type SatisfactionRequest struct {
	Satisfaction string `json:"satisfaction" form:"satisfaction" validate:"required,oneof=good bad"`
}

// Create godoc
// @Summary Create pomodoro
// @Description The project must belong to the caller and to the given category.
// @Tags pomodoros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePomodoroRequest true "Pomodoro"
// @Success 201 {object} model.PomodoroView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoros/ [post]
func (h *PomodoroHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req CreatePomodoroRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), user.UserID, service.PomodoroInput{
		ProjectID:  req.ProjectID,
		CategoryID: req.CategoryID,
		Duration:   req.Duration,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List pomodoros, newest first
// @Tags pomodoros
// @Produce json
// @Security BearerAuth
// @Param category_id query int false "Category ID"
// @Param project_id query int false "Project ID"
// @Success 200 {array} model.PomodoroView
// @Failure 400 {object} errors.ErrorResponse
// @Router /pomodoros/ [get]
func (h *PomodoroHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var filter repository.PomodoroFilter
	if err := echo.QueryParamsBinder(c).
		Int64("category_id", &filter.CategoryID).
		Int64("project_id", &filter.ProjectID).
		BindError(); err != nil {
		return invalid("category_id and project_id must be integers")
	}
	list, err := h.svc.List(c.Request().Context(), user.UserID, filter)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get pomodoro
// @Tags pomodoros
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pomodoro ID"
// @Success 200 {object} model.PomodoroView
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoros/{id} [get]
func (h *PomodoroHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, p)
}

// RateLatest godoc
// @Summary Rate the most recent pomodoro
// @Tags pomodoros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SatisfactionRequest true "good or bad"
// @Success 200 {object} model.PomodoroView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoros/ [put]
func (h *PomodoroHandler) RateLatest(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req SatisfactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.RateLatest(c.Request().Context(), user.UserID, req.Satisfaction)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, p)
}

// Rate godoc
// @Summary Rate a pomodoro
// @Tags pomodoros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pomodoro ID"
// @Param request body SatisfactionRequest true "good or bad"
// @Success 200 {object} model.PomodoroView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pomodoros/{id} [put]
func (h *PomodoroHandler) Rate(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req SatisfactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Rate(c.Request().Context(), user.UserID, id, req.Satisfaction)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary Delete pomodoro
// @Tags pomodoros
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pomodoro ID"
// @Success 200 {object} DeleteResponse
// @Router /pomodoros/{id} [delete]
func (h *PomodoroHandler) Delete(c echo.Context) error {
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
