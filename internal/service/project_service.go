package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// ProjectService manages the caller's projects.
type ProjectService interface {
	Create(ctx context.Context, userID string, categoryID int64, name string) (*model.ProjectRow, error)
	List(ctx context.Context, userID string, filter repository.ProjectFilter) ([]model.ProjectRow, error)
	Get(ctx context.Context, userID string, id int64) (*model.ProjectRow, error)
	End(ctx context.Context, userID string, id int64) (*model.ProjectRow, error)
	Cancel(ctx context.Context, userID string, id int64) (*model.ProjectRow, error)
	Rename(ctx context.Context, userID string, id int64, name string) (*model.ProjectRow, error)
	Delete(ctx context.Context, userID string, id int64) (DeleteResult, error)
}

type projectService struct {
	projects   repository.ProjectRepository
	categories repository.CategoryRepository
	now        Clock
}

// NewProjectService builds a ProjectService.
func NewProjectService(projects repository.ProjectRepository, categories repository.CategoryRepository, now Clock) ProjectService {
	return &projectService{projects: projects, categories: categories, now: clockOrNow(now)}
}

// Create starts a project today inside one of the caller's categories.
func (s *projectService) Create(ctx context.Context, userID string, categoryID int64, name string) (*model.ProjectRow, error) {
	name, err := requireName("project_name", name)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound("category", categoryID)
		}
		return nil, err
	}

	id, err := s.projects.Create(ctx, &model.Project{
		UserID:      userID,
		CategoryID:  categoryID,
		ProjectName: name,
		StartDate:   today(s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *projectService) List(ctx context.Context, userID string, filter repository.ProjectFilter) ([]model.ProjectRow, error) {
	switch filter.Status {
	case model.ProjectStatusAny, model.ProjectStatusOpen, model.ProjectStatusClosed:
	default:
		return nil, fmt.Errorf("%w: status must be 'open' or 'closed', got %q", apperrors.ErrValidation, filter.Status)
	}
	return s.projects.List(ctx, userID, filter)
}

func (s *projectService) Get(ctx context.Context, userID string, id int64) (*model.ProjectRow, error) {
	p, err := s.projects.FindByID(ctx, userID, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, notFound("project", id)
	}
	return p, err
}

// End marks the project finished today.
func (s *projectService) End(ctx context.Context, userID string, id int64) (*model.ProjectRow, error) {
	if _, err := s.projects.SetEndDate(ctx, userID, id, today(s.now())); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Cancel marks the project abandoned today.
func (s *projectService) Cancel(ctx context.Context, userID string, id int64) (*model.ProjectRow, error) {
	if _, err := s.projects.SetCanceledDate(ctx, userID, id, today(s.now())); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *projectService) Rename(ctx context.Context, userID string, id int64, name string) (*model.ProjectRow, error) {
	name, err := requireName("project_name", name)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.Rename(ctx, userID, id, name); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *projectService) Delete(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.projects.Delete(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}
