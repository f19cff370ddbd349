package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/service"
)

// AccessTokenCookie carries "Bearer <token>" for browser clients.
const AccessTokenCookie = "access_token"

const dateLayout = "2006-01-02"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
	cookieTTL    time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieSecure bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure, cookieTTL: cookieTTL}
}

// SignupRequest represents a user registration form.
type SignupRequest struct {
	Email     string `form:"email" json:"email" validate:"required,email,max=255"`
	FirstName string `form:"first_name" json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,min=1,max=255"`
	BirthDate string `form:"birth_date" json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Password  string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

// TokenRequest is an OAuth2 password grant form; username carries the email.
type TokenRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// SignupResponse acknowledges a registration.
type SignupResponse struct {
	Detail string `json:"detail"`
	UserID string `json:"user_id"`
}

// TokenResponse represents an authentication response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, invalid(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

// Signup godoc
// @Summary User registration
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param birth_date formData string false "Birth date (YYYY-MM-DD)"
// @Param password formData string true "Password (min 8)"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birth, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birth,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return fail(err)
	}

	return c.JSON(http.StatusCreated, SignupResponse{Detail: "user created", UserID: user.UserID})
}

// Token godoc
// @Summary User login
// @Description OAuth2 password grant. Also sets an HTTP-only access_token cookie.
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/token [post]
// @Router /users/login [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the access_token cookie. Bearer tokens stay valid until they expire.
// @Tags users
// @Produce json
// @Success 200 {object} DetailResponse
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, DetailResponse{Detail: "logged out"})
}
