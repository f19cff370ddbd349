package router

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"pomodoros/internal/auth"
	"pomodoros/internal/handler"
	"pomodoros/internal/metrics"
)

// Handlers bundles every resource handler the router mounts.
type Handlers struct {
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Categories     *handler.CategoryHandler
	Projects       *handler.ProjectHandler
	Pomodoros      *handler.PomodoroHandler
	RecallProjects *handler.RecallProjectHandler
	Recalls        *handler.RecallHandler
}

// Deps are the collaborators the router needs besides handlers.
type Deps struct {
	Authenticator *auth.Authenticator
	// Ready reports whether the store answers; nil means always ready.
	Ready func(ctx context.Context) error
	Log   *zap.Logger
}

// Register wires routes and middleware.
func Register(e *echo.Echo, h Handlers, deps Deps) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/readyz", func(c echo.Context) error {
		if deps.Ready != nil {
			if err := deps.Ready(c.Request().Context()); err != nil {
				log.Warn("readiness check failed", zap.Error(err))
				return c.String(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	users := e.Group("/users")
	users.POST("/signup", h.Auth.Signup)
	users.POST("/token", h.Auth.Token)
	users.POST("/login", h.Auth.Token)
	users.GET("/login", loginHint)
	users.POST("/logout", h.Auth.Logout)

	// Secured routes (require a bearer token or the access_token cookie)
	secured := echojwt.WithConfig(jwtConfig(deps.Authenticator))

	me := e.Group("/users", secured)
	me.GET("/me", h.Users.Me)
	me.PUT("/", h.Users.Update)
	me.DELETE("/", h.Users.Delete)

	categories := e.Group("/categories", secured)
	categories.POST("/", h.Categories.Create)
	categories.GET("/", h.Categories.List)
	categories.GET("/:id", h.Categories.Get)
	categories.PUT("/:id", h.Categories.Rename)
	categories.DELETE("/:id", h.Categories.Delete)

	projects := e.Group("/projects", secured)
	projects.POST("/", h.Projects.Create)
	projects.GET("/", h.Projects.List)
	projects.GET("/:id", h.Projects.Get)
	projects.PUT("/:id/end", h.Projects.End)
	projects.PUT("/:id/canceled", h.Projects.Cancel)
	projects.PUT("/:id/name", h.Projects.Rename)
	projects.DELETE("/:id", h.Projects.Delete)

	pomodoros := e.Group("/pomodoros", secured)
	pomodoros.POST("/", h.Pomodoros.Create)
	pomodoros.GET("/", h.Pomodoros.List)
	pomodoros.PUT("/", h.Pomodoros.RateLatest)
	pomodoros.GET("/:id", h.Pomodoros.Get)
	pomodoros.PUT("/:id", h.Pomodoros.Rate)
	pomodoros.DELETE("/:id", h.Pomodoros.Delete)

	recallProjects := e.Group("/recall_projects", secured)
	recallProjects.POST("/", h.RecallProjects.Create)
	recallProjects.GET("/", h.RecallProjects.List)
	recallProjects.GET("/:id", h.RecallProjects.Get)
	recallProjects.PUT("/:id", h.RecallProjects.Rename)
	recallProjects.DELETE("/:id", h.RecallProjects.Delete)
	recallProjects.DELETE("/:id/recalls", h.RecallProjects.DeleteRecalls)

	recalls := e.Group("/recalls", secured)
	recalls.POST("/", h.Recalls.Create)
	recalls.GET("/", h.Recalls.List)
	recalls.GET("/:id", h.Recalls.Get)
	recalls.PUT("/:id", h.Recalls.Update)
	recalls.DELETE("/:id", h.Recalls.Delete)
}

// loginHint godoc
// @Summary Login instructions
// @Description Unauthenticated browser requests are redirected here.
// @Tags users
// @Produce json
// @Success 200 {object} handler.DetailResponse
// @Router /users/login [get]
func loginHint(c echo.Context) error {
	return c.JSON(http.StatusOK, handler.DetailResponse{
		Detail: "POST username and password as a form to /users/token",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
