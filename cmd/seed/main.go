package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pomodoros/internal/auth"
	"pomodoros/internal/config"
	"pomodoros/internal/db"
	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/logger"
	"pomodoros/internal/repository"
	"pomodoros/internal/service"
)

// demoData maps category names to their projects.
var demoData = map[string][]string{
	"Work":     {"Quarterly report", "Code review"},
	"Learning": {"Go concurrency"},
}

var (
	configPath string
	email      string
	password   string
)

func main() {
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Create a demo user with categories, projects and pomodoros",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&email, "email", "demo@example.com", "demo user email")
	cmd.Flags().StringVar(&password, "password", "demo-password", "demo user password")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.ErrorLogPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("seed")

	gw, err := db.NewGateway(func() (*gorm.DB, error) { return db.Open(db.OptionsFromConfig(cfg), log) }, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer gw.Close()
	if err := db.Migrate(gw.DB()); err != nil {
		return err
	}
	log.Info("database migrations completed")

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL)
	if err != nil {
		return err
	}
	users := repository.NewUserRepository(gw)
	categoryRepo := repository.NewCategoryRepository(gw)
	projectRepo := repository.NewProjectRepository(gw)

	authSvc := service.NewAuthService(users, tokens, time.Now)
	categories := service.NewCategoryService(categoryRepo)
	projects := service.NewProjectService(projectRepo, categoryRepo, time.Now)
	pomodoros := service.NewPomodoroService(repository.NewPomodoroRepository(gw), projectRepo, time.Now)

	user, err := authSvc.Signup(ctx, service.SignupInput{
		Email:     email,
		Password:  password,
		FirstName: "Demo",
		LastName:  "User",
	})
	if errors.Is(err, apperrors.ErrConflict) {
		log.Info("demo user already exists, nothing to do", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	created := 0
	for categoryName, projectNames := range demoData {
		cat, err := categories.Create(ctx, user.UserID, categoryName)
		if err != nil {
			return fmt.Errorf("create category %s: %w", categoryName, err)
		}
		for _, name := range projectNames {
			p, err := projects.Create(ctx, user.UserID, cat.CategoryID, name)
			if err != nil {
				return fmt.Errorf("create project %s: %w", name, err)
			}
			if _, err := pomodoros.Create(ctx, user.UserID, service.PomodoroInput{
				ProjectID:  p.ProjectID,
				CategoryID: cat.CategoryID,
				Duration:   25,
			}); err != nil {
				return fmt.Errorf("create pomodoro for %s: %w", name, err)
			}
			created++
		}
	}

	log.Info("seed completed",
		zap.String("email", email),
		zap.String("user_id", user.UserID),
		zap.Int("projects", created),
	)
	return nil
}
