package repository

import (
	"context"

	"pomodoros/internal/db"
	"pomodoros/internal/model"
	"pomodoros/internal/query"
)

// CategoryRepository persists categories. Every method is scoped to userID.
type CategoryRepository interface {
	Create(ctx context.Context, userID, name string) (int64, error)
	List(ctx context.Context, userID string) ([]model.Category, error)
	FindByID(ctx context.Context, userID string, id int64) (*model.Category, error)
	Rename(ctx context.Context, userID string, id int64, name string) (int64, error)
	Delete(ctx context.Context, userID string, id int64) (int64, error)
}

type categoryRepository struct {
	db db.Executor
}

// NewCategoryRepository builds a gateway-backed repository.
func NewCategoryRepository(ex db.Executor) CategoryRepository {
	return &categoryRepository{db: ex}
}

var categoryColumns = []query.Column{categories.CategoryID, categories.UserID, categories.CategoryName}

var ownedCategory = query.All(query.Eq(categories.UserID), query.Eq(categories.CategoryID))

func (r *categoryRepository) Create(ctx context.Context, userID, name string) (int64, error) {
	res, err := run(ctx, r.db, query.Insert{
		Table:   categoriesTable,
		Columns: []query.Column{categories.CategoryName, categories.UserID},
	}, name, userID)
	return res.LastInsertID, err
}

func (r *categoryRepository) List(ctx context.Context, userID string) ([]model.Category, error) {
	return fetchAll[model.Category](ctx, r.db, query.Select{
		From:    categoriesTable,
		Columns: categoryColumns,
		Where:   query.Eq(categories.UserID),
		OrderBy: []query.Column{categories.CategoryID},
	}, userID)
}

func (r *categoryRepository) FindByID(ctx context.Context, userID string, id int64) (*model.Category, error) {
	return fetchOne[model.Category](ctx, r.db, query.Select{
		From:    categoriesTable,
		Columns: categoryColumns,
		Where:   ownedCategory,
	}, userID, id)
}

func (r *categoryRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	res, err := run(ctx, r.db, query.Update{
		Table: categoriesTable,
		Set:   []query.Column{categories.CategoryName},
		Where: ownedCategory,
	}, name, userID, id)
	return res.RowsAffected, err
}

func (r *categoryRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: categoriesTable, Where: ownedCategory}, userID, id)
	return res.RowsAffected, err
}
