package service

import (
	"context"
	"fmt"
	"time"

	"pomodoros/internal/auth"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// UserService manages the caller's own account.
type UserService interface {
	UpdateProfile(ctx context.Context, user *model.User, in ProfileInput) (*model.User, error)
	DeleteAccount(ctx context.Context, user *model.User) (DeleteResult, error)
}

type userService struct {
	repo     repository.UserRepository
	identity auth.IdentityStore
}

// NewUserService builds a UserService. identity may be nil.
func NewUserService(repo repository.UserRepository, identity auth.IdentityStore) UserService {
	return &userService{repo: repo, identity: identity}
}

func (s *userService) UpdateProfile(ctx context.Context, user *model.User, in ProfileInput) (*model.User, error) {
	first, err := requireName("first_name", in.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := requireName("last_name", in.LastName)
	if err != nil {
		return nil, err
	}

	updated := *user
	updated.FirstName = first
	updated.LastName = last
	updated.BirthDate = in.BirthDate
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.invalidate(ctx, user.Email)

	return s.repo.FindByID(ctx, user.UserID)
}

// DeleteAccount removes the user row. Owned rows in other tables are kept.
func (s *userService) DeleteAccount(ctx context.Context, user *model.User) (DeleteResult, error) {
	n, err := s.repo.Delete(ctx, user.UserID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	s.invalidate(ctx, user.Email)
	return DeleteResult{Deleted: n}, nil
}

func (s *userService) invalidate(ctx context.Context, email string) {
	if s.identity != nil {
		s.identity.Invalidate(ctx, email)
	}
}
