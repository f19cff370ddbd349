package repository

import (
	"context"

	"pomodoros/internal/db"
	"pomodoros/internal/model"
	"pomodoros/internal/query"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) (int64, error)
}

type userRepository struct {
	db db.Executor
}

// NewUserRepository builds a gateway-backed repository.
func NewUserRepository(ex db.Executor) UserRepository {
	return &userRepository{db: ex}
}

var userColumns = []query.Column{
	users.UserID, users.Email, users.Password, users.FirstName,
	users.LastName, users.BirthDate, users.CreatedAt,
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	_, err := run(ctx, r.db, query.Insert{Table: usersTable, Columns: userColumns},
		user.UserID, user.Email, user.PasswordHash, user.FirstName,
		user.LastName, user.BirthDate, user.CreatedAt)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return fetchOne[model.User](ctx, r.db, query.Select{
		From:    usersTable,
		Columns: userColumns,
		Where:   query.Eq(users.UserID),
	}, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return fetchOne[model.User](ctx, r.db, query.Select{
		From:    usersTable,
		Columns: userColumns,
		Where:   query.Eq(users.Email),
	}, email)
}

// Update writes the profile fields. Email and password are not changed here.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	_, err := run(ctx, r.db, query.Update{
		Table: usersTable,
		Set:   []query.Column{users.FirstName, users.LastName, users.BirthDate},
		Where: query.Eq(users.UserID),
	}, user.FirstName, user.LastName, user.BirthDate, user.UserID)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := run(ctx, r.db, query.Delete{Table: usersTable, Where: query.Eq(users.UserID)}, id)
	return res.RowsAffected, err
}
