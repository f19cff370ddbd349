package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pomodoros/internal/auth"
	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = fmt.Errorf("user already exists: %w", apperrors.ErrConflict)
)

// SignupInput carries the registration form.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// AuthService handles registration and login.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	now    Clock
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, now Clock) AuthService {
	return &authService{users: users, tokens: tokens, now: clockOrNow(now)}
}

// Signup creates a user with a hashed password and a random id.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BirthDate:    in.BirthDate,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent signup can win between the lookup and the insert
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the password and issues an access token for the email.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, 0)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return token, nil
}
