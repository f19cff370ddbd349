package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"pomodoros/internal/model"
	"pomodoros/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockIdentityStore is a mock implementation of auth.IdentityStore.
type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) Get(ctx context.Context, email string) (*model.User, bool) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.User), args.Bool(1)
}

func (m *MockIdentityStore) Put(ctx context.Context, user *model.User) {
	m.Called(ctx, user)
}

func (m *MockIdentityStore) Invalidate(ctx context.Context, email string) {
	m.Called(ctx, email)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, userID, name string) (int64, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, userID string) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, userID string, id int64) (*model.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	args := m.Called(ctx, userID, id, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) (int64, error) {
	args := m.Called(ctx, project)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, userID string, filter repository.ProjectFilter) ([]model.ProjectRow, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectRow), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, userID string, id int64) (*model.ProjectRow, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectRow), args.Error(1)
}

func (m *MockProjectRepository) SetEndDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error) {
	args := m.Called(ctx, userID, id, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) SetCanceledDate(ctx context.Context, userID string, id int64, day time.Time) (int64, error) {
	args := m.Called(ctx, userID, id, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	args := m.Called(ctx, userID, id, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockPomodoroRepository is a mock implementation of PomodoroRepository.
type MockPomodoroRepository struct {
	mock.Mock
}

func (m *MockPomodoroRepository) Create(ctx context.Context, pomodoro *model.Pomodoro) (int64, error) {
	args := m.Called(ctx, pomodoro)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPomodoroRepository) List(ctx context.Context, userID string, filter repository.PomodoroFilter) ([]model.PomodoroRow, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PomodoroRow), args.Error(1)
}

func (m *MockPomodoroRepository) FindByID(ctx context.Context, userID string, id int64) (*model.PomodoroRow, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PomodoroRow), args.Error(1)
}

func (m *MockPomodoroRepository) LatestID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPomodoroRepository) SetSatisfaction(ctx context.Context, userID string, id int64, s model.Satisfaction) (int64, error) {
	args := m.Called(ctx, userID, id, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPomodoroRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecallProjectRepository is a mock implementation of RecallProjectRepository.
type MockRecallProjectRepository struct {
	mock.Mock
}

func (m *MockRecallProjectRepository) Create(ctx context.Context, userID, name string) (int64, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecallProjectRepository) List(ctx context.Context, userID string) ([]model.RecallProject, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecallProject), args.Error(1)
}

func (m *MockRecallProjectRepository) FindByID(ctx context.Context, userID string, id int64) (*model.RecallProject, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecallProject), args.Error(1)
}

func (m *MockRecallProjectRepository) Rename(ctx context.Context, userID string, id int64, name string) (int64, error) {
	args := m.Called(ctx, userID, id, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecallProjectRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecallRepository is a mock implementation of RecallRepository.
type MockRecallRepository struct {
	mock.Mock
}

func (m *MockRecallRepository) Create(ctx context.Context, recall *model.Recall) (int64, error) {
	args := m.Called(ctx, recall)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecallRepository) List(ctx context.Context, userID string, recallProjectID int64) ([]model.RecallRow, error) {
	args := m.Called(ctx, userID, recallProjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecallRow), args.Error(1)
}

func (m *MockRecallRepository) FindByID(ctx context.Context, userID string, id int64) (*model.RecallRow, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecallRow), args.Error(1)
}

func (m *MockRecallRepository) Update(ctx context.Context, userID string, id int64, title, body string) (int64, error) {
	args := m.Called(ctx, userID, id, title, body)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecallRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecallRepository) DeleteInProject(ctx context.Context, userID string, recallProjectID int64) (int64, error) {
	args := m.Called(ctx, userID, recallProjectID)
	return args.Get(0).(int64), args.Error(1)
}
