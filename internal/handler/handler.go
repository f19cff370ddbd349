package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/service"
)

// CurrentUserKey is the echo context key holding the authenticated *model.User.
const CurrentUserKey = "current_user"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, u *model.User) {
	c.Set(CurrentUserKey, u)
}

// CurrentUser returns the authenticated user set by the auth middleware.
func CurrentUser(c echo.Context) (*model.User, error) {
	u, ok := c.Get(CurrentUserKey).(*model.User)
	if !ok || u == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}

// DeleteResponse reports the outcome of a delete. Deleting a missing row is
// not an error.
type DeleteResponse struct {
	Detail  string `json:"detail"`
	Deleted int64  `json:"deleted"`
}

// DetailResponse is a plain acknowledgement.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// fail converts a domain error into an echo HTTP error carrying ErrorResponse.
func fail(err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse()).SetInternal(err)
}

func invalid(msg string) error {
	return fail(fmt.Errorf("%w: %s", apperrors.ErrValidation, msg))
}

// bind decodes and validates a request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return invalid("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return invalid(err.Error())
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("id must be a positive integer")
	}
	return id, nil
}

func deleted(c echo.Context, res service.DeleteResult) error {
	return c.JSON(http.StatusOK, DeleteResponse{Detail: res.Detail(), Deleted: res.Deleted})
}
