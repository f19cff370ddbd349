package service

import (
	"context"
	"errors"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// CategoryService manages the caller's categories.
type CategoryService interface {
	Create(ctx context.Context, userID, name string) (*model.Category, error)
	List(ctx context.Context, userID string) ([]model.Category, error)
	Get(ctx context.Context, userID string, id int64) (*model.Category, error)
	Rename(ctx context.Context, userID string, id int64, name string) (*model.Category, error)
	Delete(ctx context.Context, userID string, id int64) (DeleteResult, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, userID, name string) (*model.Category, error) {
	name, err := requireName("category_name", name)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return &model.Category{CategoryID: id, UserID: userID, CategoryName: name}, nil
}

func (s *categoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.repo.List(ctx, userID)
}

func (s *categoryService) Get(ctx context.Context, userID string, id int64) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, userID, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, notFound("category", id)
	}
	return c, err
}

func (s *categoryService) Rename(ctx context.Context, userID string, id int64, name string) (*model.Category, error) {
	name, err := requireName("category_name", name)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Rename(ctx, userID, id, name); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *categoryService) Delete(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.repo.Delete(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}
