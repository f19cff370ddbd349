package repository

import (
	"context"

	"pomodoros/internal/db"
	"pomodoros/internal/model"
	"pomodoros/internal/query"
)

// PomodoroFilter narrows a pomodoro listing. Zero values match everything.
type PomodoroFilter struct {
	CategoryID int64
	ProjectID  int64
}

// PomodoroRepository persists pomodoros. Every method is scoped to userID.
type PomodoroRepository interface {
	Create(ctx context.Context, pomodoro *model.Pomodoro) (int64, error)
	List(ctx context.Context, userID string, filter PomodoroFilter) ([]model.PomodoroRow, error)
	FindByID(ctx context.Context, userID string, id int64) (*model.PomodoroRow, error)
	LatestID(ctx context.Context, userID string) (int64, error)
	SetSatisfaction(ctx context.Context, userID string, id int64, s model.Satisfaction) (int64, error)
	Delete(ctx context.Context, userID string, id int64) (int64, error)
}

type pomodoroRepository struct {
	db db.Executor
}

// NewPomodoroRepository builds a gateway-backed repository.
func NewPomodoroRepository(ex db.Executor) PomodoroRepository {
	return &pomodoroRepository{db: ex}
}

var pomodoroRowColumns = []query.Column{
	pomodoros.PomodoroID, pomodoros.Duration, pomodoros.PomodoroDate,
	projects.ProjectID, projects.ProjectName,
	categories.CategoryID, categories.CategoryName,
	pomodoros.Satisfaction,
}

var pomodoroJoins = []query.Join{
	{Table: projectsTable, On: query.On(pomodoros.ProjectID, projects.ProjectID)},
	{Table: categoriesTable, On: query.On(pomodoros.CategoryID, categories.CategoryID)},
}

type pomodoroIDRow struct {
	PomodoroID int64 `gorm:"column:pomodoro_id"`
}

var ownedPomodoro = query.All(query.Eq(pomodoros.UserID), query.Eq(pomodoros.PomodoroID))

func (r *pomodoroRepository) Create(ctx context.Context, p *model.Pomodoro) (int64, error) {
	res, err := run(ctx, r.db, query.Insert{
		Table: pomodorosTable,
		Columns: []query.Column{
			pomodoros.ProjectID, pomodoros.CategoryID, pomodoros.Duration,
			pomodoros.PomodoroDate, pomodoros.UserID,
		},
	}, p.ProjectID, p.CategoryID, p.Duration, p.PomodoroDate, p.UserID)
	return res.LastInsertID, err
}

func (r *pomodoroRepository) List(ctx context.Context, userID string, filter PomodoroFilter) ([]model.PomodoroRow, error) {
	where := []query.Predicate{query.Eq(pomodoros.UserID)}
	args := []any{userID}
	if filter.CategoryID != 0 {
		where = append(where, query.Eq(pomodoros.CategoryID))
		args = append(args, filter.CategoryID)
	}
	if filter.ProjectID != 0 {
		where = append(where, query.Eq(pomodoros.ProjectID))
		args = append(args, filter.ProjectID)
	}

	return fetchAll[model.PomodoroRow](ctx, r.db, query.Select{
		From:    pomodorosTable,
		Joins:   pomodoroJoins,
		Columns: pomodoroRowColumns,
		Where:   query.All(where...),
		OrderBy: []query.Column{pomodoros.PomodoroDate, pomodoros.PomodoroID},
		Desc:    true,
	}, args...)
}

func (r *pomodoroRepository) FindByID(ctx context.Context, userID string, id int64) (*model.PomodoroRow, error) {
	return fetchOne[model.PomodoroRow](ctx, r.db, query.Select{
		From:    pomodorosTable,
		Joins:   pomodoroJoins,
		Columns: pomodoroRowColumns,
		Where:   ownedPomodoro,
	}, userID, id)
}

// LatestID returns the id of the caller's most recent pomodoro among those
// still attached to a project and category.
func (r *pomodoroRepository) LatestID(ctx context.Context, userID string) (int64, error) {
	row, err := fetchOne[pomodoroIDRow](ctx, r.db, query.Select{
		From:    pomodorosTable,
		Joins:   pomodoroJoins,
		Columns: []query.Column{pomodoros.PomodoroID},
		Where:   query.Eq(pomodoros.UserID),
		OrderBy: []query.Column{pomodoros.PomodoroDate, pomodoros.PomodoroID},
		Desc:    true,
		Limit:   1,
	}, userID)
	if err != nil {
		return 0, err
	}
	return row.PomodoroID, nil
}

func (r *pomodoroRepository) SetSatisfaction(ctx context.Context, userID string, id int64, s model.Satisfaction) (int64, error) {
	res, err := run(ctx, r.db, query.Update{
		Table: pomodorosTable,
		Set:   []query.Column{pomodoros.Satisfaction},
		Where: ownedPomodoro,
	}, int(s), userID, id)
	return res.RowsAffected, err
}

func (r *pomodoroRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: pomodorosTable, Where: ownedPomodoro}, userID, id)
	return res.RowsAffected, err
}
