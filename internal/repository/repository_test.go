package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pomodoros/internal/config"
	"pomodoros/internal/db"
	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
)

func newTestGateway(t *testing.T) *db.Gateway {
	t.Helper()
	opts := db.Options{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "repo.db")}
	gw, err := db.NewGateway(func() (*gorm.DB, error) { return db.Open(opts, zap.NewNop()) }, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gw.DB()))
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestGateway(t))
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		UserID:       "11111111-1111-1111-1111-111111111111",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		BirthDate:    &birth,
		CreatedAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, user))

	dup := *user
	dup.UserID = "22222222-2222-2222-2222-222222222222"
	assert.ErrorIs(t, repo.Create(ctx, &dup), apperrors.ErrConflict)

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)
	assert.Equal(t, "hash", got.PasswordHash)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "1990-05-17", got.BirthDate.Format("2006-01-02"))

	got.FirstName = "Augusta"
	got.BirthDate = nil
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.Nil(t, got.BirthDate)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err := repo.Delete(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.FindByID(ctx, user.UserID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryRepository_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestGateway(t))

	id, err := repo.Create(ctx, "alice", "Work")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "bob", "Hobby")
	require.NoError(t, err)

	list, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Work", list[0].CategoryName)

	_, err = repo.FindByID(ctx, "bob", id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err := repo.Rename(ctx, "bob", id, "Stolen")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Rename(ctx, "alice", id, "Deep work")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "bob", id)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	empty, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	cats := NewCategoryRepository(gw)
	repo := NewProjectRepository(gw)
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	work, err := cats.Create(ctx, "alice", "Work")
	require.NoError(t, err)
	home, err := cats.Create(ctx, "alice", "Home")
	require.NoError(t, err)

	report, err := repo.Create(ctx, &model.Project{UserID: "alice", CategoryID: work, ProjectName: "Report", StartDate: today})
	require.NoError(t, err)
	garden, err := repo.Create(ctx, &model.Project{UserID: "alice", CategoryID: home, ProjectName: "Garden", StartDate: today})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Project{UserID: "bob", CategoryID: work, ProjectName: "Intruder", StartDate: today})
	require.NoError(t, err)

	byCategory, err := repo.List(ctx, "alice", ProjectFilter{CategoryID: work})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Report", byCategory[0].ProjectName)
	assert.Equal(t, "Work", byCategory[0].CategoryName)

	n, err := repo.SetCanceledDate(ctx, "alice", garden, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	open, err := repo.List(ctx, "alice", ProjectFilter{Status: model.ProjectStatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, report, open[0].ProjectID)

	closed, err := repo.List(ctx, "alice", ProjectFilter{Status: model.ProjectStatusClosed})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, garden, closed[0].ProjectID)
	require.NotNil(t, closed[0].CanceledDate)
	assert.Nil(t, closed[0].EndDate)

	all, err := repo.List(ctx, "alice", ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err = repo.Rename(ctx, "alice", report, "Quarterly report")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err := repo.FindByID(ctx, "alice", report)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly report", got.ProjectName)

	_, err = repo.FindByID(ctx, "bob", report)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPomodoroRepository(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	cats := NewCategoryRepository(gw)
	projs := NewProjectRepository(gw)
	repo := NewPomodoroRepository(gw)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cat, err := cats.Create(ctx, "alice", "Work")
	require.NoError(t, err)
	proj, err := projs.Create(ctx, &model.Project{UserID: "alice", CategoryID: cat, ProjectName: "Report", StartDate: day})
	require.NoError(t, err)

	_, err = repo.LatestID(ctx, "alice")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	first, err := repo.Create(ctx, &model.Pomodoro{UserID: "alice", ProjectID: proj, CategoryID: cat, Duration: 25, PomodoroDate: day.Add(9 * time.Hour)})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &model.Pomodoro{UserID: "alice", ProjectID: proj, CategoryID: cat, Duration: 50, PomodoroDate: day.Add(10 * time.Hour)})
	require.NoError(t, err)

	latest, err := repo.LatestID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	n, err := repo.SetSatisfaction(ctx, "alice", first, model.SatisfactionGood)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := repo.List(ctx, "alice", PomodoroFilter{CategoryID: cat, ProjectID: proj})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second, rows[0].PomodoroID, "newest first")
	assert.Equal(t, "Report", rows[0].ProjectName)
	assert.Equal(t, "Work", rows[0].CategoryName)
	assert.Equal(t, "missing", model.SatisfactionFromCode(rows[0].Satisfaction).Label())
	assert.Equal(t, "good", model.SatisfactionFromCode(rows[1].Satisfaction).Label())

	_, err = repo.FindByID(ctx, "bob", first)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err = repo.Delete(ctx, "alice", 9999)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = cats.Delete(ctx, "alice", cat)
	require.NoError(t, err)
	_, err = repo.LatestID(ctx, "alice")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "orphaned pomodoros are not the latest")
}

func TestRecallRepositories(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	folders := NewRecallProjectRepository(gw)
	repo := NewRecallRepository(gw)

	folder, err := folders.Create(ctx, "alice", "Go")
	require.NoError(t, err)
	_, err = folders.Create(ctx, "alice", "Go")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = folders.Create(ctx, "bob", "Go")
	require.NoError(t, err, "names are unique per user only")

	id, err := repo.Create(ctx, &model.Recall{UserID: "alice", RecallProjectID: folder, RecallTitle: "Channels", Body: "close from the sender"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Recall{UserID: "alice", RecallProjectID: folder, RecallTitle: "Maps", Body: "not safe for concurrent writes"})
	require.NoError(t, err)

	rows, err := repo.List(ctx, "alice", folder)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Go", rows[0].ProjectName)

	n, err := repo.Update(ctx, "alice", id, "Channels", "only the sender closes")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err := repo.FindByID(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "only the sender closes", got.Body)

	_, err = repo.FindByID(ctx, "bob", id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err = folders.Delete(ctx, "alice", folder)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	orphans, err := repo.List(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, orphans, "inner join hides recalls whose folder is gone")

	n, err = repo.DeleteInProject(ctx, "alice", folder)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
