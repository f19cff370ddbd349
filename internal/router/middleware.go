package router

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pomodoros/internal/auth"
	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/handler"
)

// LoginPath is where browsers are sent when they are not authenticated.
const LoginPath = "/users/login"

// jwtConfig reads the token from the Authorization header or the access_token
// cookie and resolves it to the stored user.
func jwtConfig(authn *auth.Authenticator) echojwt.Config {
	return echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + handler.AccessTokenCookie,
		ContextKey:  handler.CurrentUserKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
			return authn.CurrentUser(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrStoreUnavailable) {
				return httpError(err)
			}
			return httpError(apperrors.ErrUnauthorized)
		},
	}
}

func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse()).SetInternal(err)
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// ErrorHandler renders every error as ErrorResponse JSON, logs server errors
// and redirects unauthenticated browsers to the login page.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = httpError(err)
		}

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", he.Code),
				zap.Error(cause),
			)
		}

		if he.Code == http.StatusUnauthorized {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			if wantsHTML(c) {
				_ = c.Redirect(http.StatusSeeOther, LoginPath)
				return
			}
		}

		body := he.Message
		if msg, ok := he.Message.(string); ok {
			body = apperrors.ErrorResponse{
				Error: msg,
				Code:  strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")),
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
