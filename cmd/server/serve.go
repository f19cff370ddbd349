package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pomodoros/docs"
	"pomodoros/internal/auth"
	"pomodoros/internal/cache"
	"pomodoros/internal/config"
	"pomodoros/internal/db"
	"pomodoros/internal/handler"
	"pomodoros/internal/repository"
	"pomodoros/internal/router"
	"pomodoros/internal/service"
)

const shutdownTimeout = 10 * time.Second

func openGateway(cfg *config.Config, log *zap.Logger) (*db.Gateway, error) {
	opts := db.OptionsFromConfig(cfg)
	gw, err := db.NewGateway(func() (*gorm.DB, error) { return db.Open(opts, log) }, log)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	return gw, nil
}

func runMigrate() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gw, err := openGateway(cfg, log)
	if err != nil {
		return err
	}
	defer gw.Close()

	if err := db.Migrate(gw.DB()); err != nil {
		return err
	}
	log.Info("schema is up to date", zap.String("driver", cfg.DBDriver))
	return nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	gw, err := openGateway(cfg, log)
	if err != nil {
		return err
	}
	defer gw.Close()
	if err := db.Migrate(gw.DB()); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		log.Info("redis not configured, identity cache disabled")
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL)
	if err != nil {
		return err
	}
	identity := auth.NewIdentityCache(cacheClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gw)
	categoryRepo := repository.NewCategoryRepository(gw)
	projectRepo := repository.NewProjectRepository(gw)
	pomodoroRepo := repository.NewPomodoroRepository(gw)
	folderRepo := repository.NewRecallProjectRepository(gw)
	recallRepo := repository.NewRecallRepository(gw)

	// Initialize services
	clock := time.Now
	authService := service.NewAuthService(userRepo, tokens, clock)
	userService := service.NewUserService(userRepo, identity)
	categoryService := service.NewCategoryService(categoryRepo)
	projectService := service.NewProjectService(projectRepo, categoryRepo, clock)
	pomodoroService := service.NewPomodoroService(pomodoroRepo, projectRepo, clock)
	folderService := service.NewRecallProjectService(folderRepo, recallRepo)
	recallService := service.NewRecallService(recallRepo, folderRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, router.Handlers{
		Auth:           handler.NewAuthHandler(authService, cfg.CookieSecure, cfg.TokenTTL),
		Users:          handler.NewUserHandler(userService),
		Categories:     handler.NewCategoryHandler(categoryService),
		Projects:       handler.NewProjectHandler(projectService),
		Pomodoros:      handler.NewPomodoroHandler(pomodoroService),
		RecallProjects: handler.NewRecallProjectHandler(folderService),
		Recalls:        handler.NewRecallHandler(recallService),
	}, router.Deps{
		Authenticator: auth.NewAuthenticator(tokens, userRepo, identity),
		Ready:         gw.Ping,
		Log:           log,
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("swagger", "/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
