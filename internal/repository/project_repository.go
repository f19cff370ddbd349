package repository

import (
	"context"
	"time"

	"pomodoros/internal/db"
	"pomodoros/internal/model"
	"pomodoros/internal/query"
)

// ProjectFilter narrows a project listing. Zero values match everything.
type ProjectFilter struct {
	CategoryID int64
	Status     model.ProjectStatus
}

// ProjectRepository persists projects. Every method is scoped to userID.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) (int64, error)
	List(ctx context.Context, userID string, filter ProjectFilter) ([]model.ProjectRow, error)
	FindByID(ctx context.Context, userID string, id int64) (*model.ProjectRow, error)
	SetEndDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error)
	SetCanceledDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error)
	Rename(ctx context.Context, userID string, id int64, name string) (int64, error)
	Delete(ctx context.Context, userID string, id int64) (int64, error)
}

type projectRepository struct {
	db db.Executor
}

// NewProjectRepository builds a gateway-backed repository.
func NewProjectRepository(ex db.Executor) ProjectRepository {
	return &projectRepository{db: ex}
}

var projectRowColumns = []query.Column{
	projects.ProjectID, projects.CategoryID, categories.CategoryName, projects.ProjectName,
	projects.StartDate, projects.EndDate, projects.CanceledDate,
}

var projectCategoryJoin = []query.Join{{
	Table: categoriesTable,
	On:    query.On(projects.CategoryID, categories.CategoryID),
}}

var ownedProject = query.All(query.Eq(projects.UserID), query.Eq(projects.ProjectID))

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (int64, error) {
	res, err := run(ctx, r.db, query.Insert{
		Table:   projectsTable,
		Columns: []query.Column{projects.CategoryID, projects.ProjectName, projects.StartDate, projects.UserID},
	}, p.CategoryID, p.ProjectName, p.StartDate, p.UserID)
	return res.LastInsertID, err
}

func (r *projectRepository) List(ctx context.Context, userID string, filter ProjectFilter) ([]model.ProjectRow, error) {
	where := []query.Predicate{query.Eq(projects.UserID)}
	args := []any{userID}
	if filter.CategoryID != 0 {
		where = append(where, query.Eq(projects.CategoryID))
		args = append(args, filter.CategoryID)
	}
	switch filter.Status {
	case model.ProjectStatusOpen:
		where = append(where, query.All(query.IsNull(projects.EndDate), query.IsNull(projects.CanceledDate)))
	case model.ProjectStatusClosed:
		where = append(where, query.Any(query.NotNull(projects.EndDate), query.NotNull(projects.CanceledDate)))
	}

	return fetchAll[model.ProjectRow](ctx, r.db, query.Select{
		From:    projectsTable,
		Joins:   projectCategoryJoin,
		Columns: projectRowColumns,
		Where:   query.All(where...),
		OrderBy: []query.Column{projects.ProjectID},
	}, args...)
}

func (r *projectRepository) FindByID(ctx context.Context, userID string, id int64) (*model.ProjectRow, error) {
	return fetchOne[model.ProjectRow](ctx, r.db, query.Select{
		From:    projectsTable,
		Joins:   projectCategoryJoin,
		Columns: projectRowColumns,
		Where:   ownedProject,
	}, userID, id)
}

func (r *projectRepository) SetEndDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error) {
	return r.set(ctx, projects.EndDate, day, userID, id)
}

func (r *projectRepository) SetCanceledDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error) {
	return r.set(ctx, projects.CanceledDate, day, userID, id)
}

func (r *projectRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	return r.set(ctx, projects.ProjectName, name, userID, id)
}

func (r *projectRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: projectsTable, Where: ownedProject}, userID, id)
	return res.RowsAffected, err
}

func (r *projectRepository) set(ctx context.Context, col query.Column, value any, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Update{
		Table: projectsTable,
		Set:   []query.Column{col},
		Where: ownedProject,
	}, value, userID, id)
	return res.RowsAffected, err
}
