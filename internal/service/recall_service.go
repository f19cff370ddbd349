package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// RecallProjectService manages the caller's note folders.
type RecallProjectService interface {
	Create(ctx context.Context, userID, name string) (*model.RecallProject, error)
	List(ctx context.Context, userID string) ([]model.RecallProject, error)
	Get(ctx context.Context, userID string, id int64) (*model.RecallProject, error)
	Rename(ctx context.Context, userID string, id int64, name string) (*model.RecallProject, error)
	Delete(ctx context.Context, userID string, id int64) (DeleteResult, error)
	DeleteRecalls(ctx context.Context, userID string, id int64) (DeleteResult, error)
}

// RecallInput carries a note.
type RecallInput struct {
	RecallProjectID int64
	Title           string
	Body            string
}

// RecallService manages the caller's notes.
type RecallService interface {
	Create(ctx context.Context, userID string, in RecallInput) (*model.RecallRow, error)
	List(ctx context.Context, userID string, recallProjectID int64) ([]model.RecallRow, error)
	Get(ctx context.Context, userID string, id int64) (*model.RecallRow, error)
	Update(ctx context.Context, userID string, id int64, title, body string) (*model.RecallRow, error)
	Delete(ctx context.Context, userID string, id int64) (DeleteResult, error)
}

type recallProjectService struct {
	folders repository.RecallProjectRepository
	recalls repository.RecallRepository
}

// NewRecallProjectService builds a RecallProjectService.
func NewRecallProjectService(folders repository.RecallProjectRepository, recalls repository.RecallRepository) RecallProjectService {
	return &recallProjectService{folders: folders, recalls: recalls}
}

func folderConflict(name string, err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return fmt.Errorf("recall project %q already exists: %w", name, apperrors.ErrConflict)
	}
	return err
}

func (s *recallProjectService) Create(ctx context.Context, userID, name string) (*model.RecallProject, error) {
	name, err := requireName("project_name", name)
	if err != nil {
		return nil, err
	}
	id, err := s.folders.Create(ctx, userID, name)
	if err != nil {
		return nil, folderConflict(name, err)
	}
	return &model.RecallProject{RecallProjectID: id, UserID: userID, ProjectName: name}, nil
}

func (s *recallProjectService) List(ctx context.Context, userID string) ([]model.RecallProject, error) {
	return s.folders.List(ctx, userID)
}

func (s *recallProjectService) Get(ctx context.Context, userID string, id int64) (*model.RecallProject, error) {
	f, err := s.folders.FindByID(ctx, userID, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, notFound("recall project", id)
	}
	return f, err
}

func (s *recallProjectService) Rename(ctx context.Context, userID string, id int64, name string) (*model.RecallProject, error) {
	name, err := requireName("project_name", name)
	if err != nil {
		return nil, err
	}
	if _, err := s.folders.Rename(ctx, userID, id, name); err != nil {
		return nil, folderConflict(name, err)
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the folder only; its recalls stay until DeleteRecalls.
func (s *recallProjectService) Delete(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.folders.Delete(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}

func (s *recallProjectService) DeleteRecalls(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.recalls.DeleteInProject(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}

type recallService struct {
	recalls repository.RecallRepository
	folders repository.RecallProjectRepository
}

// NewRecallService builds a RecallService.
func NewRecallService(recalls repository.RecallRepository, folders repository.RecallProjectRepository) RecallService {
	return &recallService{recalls: recalls, folders: folders}
}

func checkRecall(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: recall_title is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(title) > model.MaxRecallTitle {
		return "", fmt.Errorf("%w: recall_title must be at most %d characters", apperrors.ErrValidation, model.MaxRecallTitle)
	}
	return title, nil
}

// Create stores a note in one of the caller's folders.
func (s *recallService) Create(ctx context.Context, userID string, in RecallInput) (*model.RecallRow, error) {
	title, err := checkRecall(in.Title)
	if err != nil {
		return nil, err
	}
	if _, err := s.folders.FindByID(ctx, userID, in.RecallProjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound("recall project", in.RecallProjectID)
		}
		return nil, err
	}

	id, err := s.recalls.Create(ctx, &model.Recall{
		UserID:          userID,
		RecallProjectID: in.RecallProjectID,
		RecallTitle:     title,
		Body:            in.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("create recall: %w", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *recallService) List(ctx context.Context, userID string, recallProjectID int64) ([]model.RecallRow, error) {
	return s.recalls.List(ctx, userID, recallProjectID)
}

func (s *recallService) Get(ctx context.Context, userID string, id int64) (*model.RecallRow, error) {
	r, err := s.recalls.FindByID(ctx, userID, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, notFound("recall", id)
	}
	return r, err
}

func (s *recallService) Update(ctx context.Context, userID string, id int64, title, body string) (*model.RecallRow, error) {
	title, err := checkRecall(title)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if _, err := s.recalls.Update(ctx, userID, id, title, body); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *recallService) Delete(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.recalls.Delete(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}
