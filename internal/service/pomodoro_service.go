package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// PomodoroInput carries a finished work session.
type PomodoroInput struct {
	ProjectID  int64
	CategoryID int64
	Duration   int
}

// PomodoroService records and rates work sessions.
type PomodoroService interface {
	Create(ctx context.Context, userID string, in PomodoroInput) (*model.PomodoroView, error)
	List(ctx context.Context, userID string, filter repository.PomodoroFilter) ([]model.PomodoroView, error)
	Get(ctx context.Context, userID string, id int64) (*model.PomodoroView, error)
	RateLatest(ctx context.Context, userID, satisfaction string) (*model.PomodoroView, error)
	Rate(ctx context.Context, userID string, id int64, satisfaction string) (*model.PomodoroView, error)
	Delete(ctx context.Context, userID string, id int64) (DeleteResult, error)
}

type pomodoroService struct {
	pomodoros repository.PomodoroRepository
	projects  repository.ProjectRepository
	now       Clock
}

// NewPomodoroService builds a PomodoroService.
func NewPomodoroService(pomodoros repository.PomodoroRepository, projects repository.ProjectRepository, now Clock) PomodoroService {
	return &pomodoroService{pomodoros: pomodoros, projects: projects, now: clockOrNow(now)}
}

// Create records a pomodoro now. The project must be the caller's and belong
// to the given category.
func (s *pomodoroService) Create(ctx context.Context, userID string, in PomodoroInput) (*model.PomodoroView, error) {
	if in.Duration < model.MinPomodoroMinutes {
		return nil, fmt.Errorf("%w: duration must be at least %d minutes", apperrors.ErrValidation, model.MinPomodoroMinutes)
	}
	project, err := s.projects.FindByID(ctx, userID, in.ProjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound("project", in.ProjectID)
		}
		return nil, err
	}
	if project.CategoryID != in.CategoryID {
		return nil, fmt.Errorf("%w: project %d is not in category %d", apperrors.ErrValidation, in.ProjectID, in.CategoryID)
	}

	id, err := s.pomodoros.Create(ctx, &model.Pomodoro{
		UserID:       userID,
		ProjectID:    in.ProjectID,
		CategoryID:   in.CategoryID,
		Duration:     in.Duration,
		PomodoroDate: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create pomodoro: %w", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *pomodoroService) List(ctx context.Context, userID string, filter repository.PomodoroFilter) ([]model.PomodoroView, error) {
	rows, err := s.pomodoros.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	views := make([]model.PomodoroView, len(rows))
	for i, r := range rows {
		views[i] = r.View()
	}
	return views, nil
}

func (s *pomodoroService) Get(ctx context.Context, userID string, id int64) (*model.PomodoroView, error) {
	row, err := s.pomodoros.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound("pomodoro", id)
		}
		return nil, err
	}
	v := row.View()
	return &v, nil
}

// RateLatest sets the satisfaction of the caller's most recent pomodoro. The
// lookup and the update are separate statements.
func (s *pomodoroService) RateLatest(ctx context.Context, userID, satisfaction string) (*model.PomodoroView, error) {
	mark, err := model.ParseSatisfaction(satisfaction)
	if err != nil {
		return nil, err
	}
	id, err := s.pomodoros.LatestID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no pomodoros recorded yet", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return s.rate(ctx, userID, id, mark)
}

func (s *pomodoroService) Rate(ctx context.Context, userID string, id int64, satisfaction string) (*model.PomodoroView, error) {
	mark, err := model.ParseSatisfaction(satisfaction)
	if err != nil {
		return nil, err
	}
	return s.rate(ctx, userID, id, mark)
}

// rate only touches pomodoros that Get can still see.
func (s *pomodoroService) rate(ctx context.Context, userID string, id int64, mark model.Satisfaction) (*model.PomodoroView, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if _, err := s.pomodoros.SetSatisfaction(ctx, userID, id, mark); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *pomodoroService) Delete(ctx context.Context, userID string, id int64) (DeleteResult, error) {
	n, err := s.pomodoros.Delete(ctx, userID, id)
	return DeleteResult{Deleted: n}, err
}
