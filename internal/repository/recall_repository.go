package repository

import (
	"context"

	"pomodoros/internal/db"
	"pomodoros/internal/model"
	"pomodoros/internal/query"
)

// RecallProjectRepository persists recall folders. Every method is scoped to
// userID.
type RecallProjectRepository interface {
	Create(ctx context.Context, userID, name string) (int64, error)
	List(ctx context.Context, userID string) ([]model.RecallProject, error)
	FindByID(ctx context.Context, userID string, id int64) (*model.RecallProject, error)
	Rename(ctx context.Context, userID string, id int64, name string) (int64, error)
	Delete(ctx context.Context, userID string, id int64) (int64, error)
}

// RecallRepository persists recalls. Every method is scoped to userID.
type RecallRepository interface {
	Create(ctx context.Context, recall *model.Recall) (int64, error)
	List(ctx context.Context, userID string, recallProjectID int64) ([]model.RecallRow, error)
	FindByID(ctx context.Context, userID string, id int64) (*model.RecallRow, error)
	Update(ctx context.Context, userID string, id int64, title, body string) (int64, error)
	Delete(ctx context.Context, userID string, id int64) (int64, error)
	DeleteInProject(ctx context.Context, userID string, recallProjectID int64) (int64, error)
}

type recallProjectRepository struct {
	db db.Executor
}

// NewRecallProjectRepository builds a gateway-backed repository.
func NewRecallProjectRepository(ex db.Executor) RecallProjectRepository {
	return &recallProjectRepository{db: ex}
}

var recallProjectColumns = []query.Column{recallProjects.RecallProjectID, recallProjects.UserID, recallProjects.ProjectName}

var ownedRecallProject = query.All(query.Eq(recallProjects.UserID), query.Eq(recallProjects.RecallProjectID))

func (r *recallProjectRepository) Create(ctx context.Context, userID, name string) (int64, error) {
	res, err := run(ctx, r.db, query.Insert{
		Table:   recallProjectsTable,
		Columns: []query.Column{recallProjects.UserID, recallProjects.ProjectName},
	}, userID, name)
	return res.LastInsertID, err
}

func (r *recallProjectRepository) List(ctx context.Context, userID string) ([]model.RecallProject, error) {
	return fetchAll[model.RecallProject](ctx, r.db, query.Select{
		From:    recallProjectsTable,
		Columns: recallProjectColumns,
		Where:   query.Eq(recallProjects.UserID),
		OrderBy: []query.Column{recallProjects.RecallProjectID},
	}, userID)
}

func (r *recallProjectRepository) FindByID(ctx context.Context, userID string, id int64) (*model.RecallProject, error) {
	return fetchOne[model.RecallProject](ctx, r.db, query.Select{
		From:    recallProjectsTable,
		Columns: recallProjectColumns,
		Where:   ownedRecallProject,
	}, userID, id)
}

func (r *recallProjectRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	res, err := run(ctx, r.db, query.Update{
		Table: recallProjectsTable,
		Set:   []query.Column{recallProjects.ProjectName},
		Where: ownedRecallProject,
	}, name, userID, id)
	return res.RowsAffected, err
}

func (r *recallProjectRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: recallProjectsTable, Where: ownedRecallProject}, userID, id)
	return res.RowsAffected, err
}

type recallRepository struct {
	db db.Executor
}

// NewRecallRepository builds a gateway-backed repository.
func NewRecallRepository(ex db.Executor) RecallRepository {
	return &recallRepository{db: ex}
}

var recallRowColumns = []query.Column{
	recalls.RecallID, recallProjects.RecallProjectID, recallProjects.ProjectName,
	recalls.RecallTitle, recalls.Recall,
}

var recallProjectJoin = []query.Join{{
	Table: recallProjectsTable,
	On:    query.On(recalls.RecallProjectID, recallProjects.RecallProjectID),
}}

var ownedRecall = query.All(query.Eq(recalls.UserID), query.Eq(recalls.RecallID))

func (r *recallRepository) Create(ctx context.Context, rc *model.Recall) (int64, error) {
	res, err := run(ctx, r.db, query.Insert{
		Table:   recallsTable,
		Columns: []query.Column{recalls.UserID, recalls.RecallProjectID, recalls.RecallTitle, recalls.Recall},
	}, rc.UserID, rc.RecallProjectID, rc.RecallTitle, rc.Body)
	return res.LastInsertID, err
}

func (r *recallRepository) List(ctx context.Context, userID string, recallProjectID int64) ([]model.RecallRow, error) {
	where := []query.Predicate{query.Eq(recalls.UserID)}
	args := []any{userID}
	if recallProjectID != 0 {
		where = append(where, query.Eq(recalls.RecallProjectID))
		args = append(args, recallProjectID)
	}
	return fetchAll[model.RecallRow](ctx, r.db, query.Select{
		From:    recallsTable,
		Joins:   recallProjectJoin,
		Columns: recallRowColumns,
		Where:   query.All(where...),
		OrderBy: []query.Column{recalls.RecallID},
	}, args...)
}

func (r *recallRepository) FindByID(ctx context.Context, userID string, id int64) (*model.RecallRow, error) {
	return fetchOne[model.RecallRow](ctx, r.db, query.Select{
		From:    recallsTable,
		Joins:   recallProjectJoin,
		Columns: recallRowColumns,
		Where:   ownedRecall,
	}, userID, id)
}

func (r *recallRepository) Update(ctx context.Context, userID string, id int64, title, body string) (int64, error) {
	res, err := run(ctx, r.db, query.Update{
		Table: recallsTable,
		Set:   []query.Column{recalls.RecallTitle, recalls.Recall},
		Where: ownedRecall,
	}, title, body, userID, id)
	return res.RowsAffected, err
}

func (r *recallRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: recallsTable, Where: ownedRecall}, userID, id)
	return res.RowsAffected, err
}

// DeleteInProject removes every recall in a folder.
func (r *recallRepository) DeleteInProject(ctx context.Context, userID string, recallProjectID int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{
		Table: recallsTable,
		Where: query.All(query.Eq(recalls.UserID), query.Eq(recalls.RecallProjectID)),
	}, userID, recallProjectID)
	return res.RowsAffected, err
}
