package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pomodoros/internal/model"
	"pomodoros/internal/service"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserResponse is the public form of a user.
type UserResponse struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

// UpdateUserRequest carries the editable profile fields.
type UpdateUserRequest struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,min=1,max=255"`
	BirthDate string `form:"birth_date" json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

func toUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.BirthDate != nil {
		d := u.BirthDate.Format(dateLayout)
		resp.BirthDate = &d
	}
	return resp
}

// Me godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update godoc
// @Summary Update the current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "Profile"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/ [put]
func (h *UserHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birth, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return err
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), user, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birth,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete godoc
// @Summary Delete the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(err)
	}
	res, err := h.svc.DeleteAccount(c.Request().Context(), user)
	if err != nil {
		return fail(err)
	}
	return deleted(c, res)
}
