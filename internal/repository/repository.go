package repository

import (
	"context"

	"pomodoros/internal/db"
	apperrors "pomodoros/internal/errors"
)

type statement interface {
	SQL() (string, error)
}

func run(ctx context.Context, ex db.Executor, st statement, args ...any) (db.Result, error) {
	text, err := st.SQL()
	if err != nil {
		return db.Result{}, err
	}
	return ex.Exec(ctx, text, args...)
}

func fetch(ctx context.Context, ex db.Executor, dest any, st statement, args ...any) error {
	text, err := st.SQL()
	if err != nil {
		return err
	}
	return ex.Query(ctx, dest, text, args...)
}

// fetchOne returns the first row, or ErrNotFound when there is none.
func fetchOne[T any](ctx context.Context, ex db.Executor, st statement, args ...any) (*T, error) {
	var rows []T
	if err := fetch(ctx, ex, &rows, st, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rows[0], nil
}

// fetchAll never returns a nil slice so empty lists encode as [].
func fetchAll[T any](ctx context.Context, ex db.Executor, st statement, args ...any) ([]T, error) {
	rows := []T{}
	if err := fetch(ctx, ex, &rows, st, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
