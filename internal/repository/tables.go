package repository

import "pomodoros/internal/query"

// Static identifiers for every table the service touches. Statements are only
// ever built from these.
const (
	usersTable          query.Table = "users"
	categoriesTable     query.Table = "categories"
	projectsTable       query.Table = "projects"
	pomodorosTable      query.Table = "pomodoros"
	recallProjectsTable query.Table = "recall_projects"
	recallsTable        query.Table = "recalls"
)

var users = struct {
	UserID, Email, Password, FirstName, LastName, BirthDate, CreatedAt query.Column
}{
	UserID:    usersTable.Col("user_id"),
	Email:     usersTable.Col("email"),
	Password:  usersTable.Col("password"),
	FirstName: usersTable.Col("first_name"),
	LastName:  usersTable.Col("last_name"),
	BirthDate: usersTable.Col("birth_date"),
	CreatedAt: usersTable.Col("created_at"),
}

var categories = struct {
	CategoryID, UserID, CategoryName query.Column
}{
	CategoryID:   categoriesTable.Col("category_id"),
	UserID:       categoriesTable.Col("user_id"),
	CategoryName: categoriesTable.Col("category_name"),
}

var projects = struct {
	ProjectID, UserID, CategoryID, ProjectName, StartDate, EndDate, CanceledDate query.Column
}{
	ProjectID:    projectsTable.Col("project_id"),
	UserID:       projectsTable.Col("user_id"),
	CategoryID:   projectsTable.Col("category_id"),
	ProjectName:  projectsTable.Col("project_name"),
	StartDate:    projectsTable.Col("start_date"),
	EndDate:      projectsTable.Col("end_date"),
	CanceledDate: projectsTable.Col("canceled_date"),
}

var pomodoros = struct {
	PomodoroID, ProjectID, CategoryID, UserID, Duration, PomodoroDate, Satisfaction query.Column
}{
	PomodoroID:   pomodorosTable.Col("pomodoro_id"),
	ProjectID:    pomodorosTable.Col("project_id"),
	CategoryID:   pomodorosTable.Col("category_id"),
	UserID:       pomodorosTable.Col("user_id"),
	Duration:     pomodorosTable.Col("duration"),
	PomodoroDate: pomodorosTable.Col("pomodoro_date"),
	Satisfaction: pomodorosTable.Col("pomodoro_satisfaction"),
}

var recallProjects = struct {
	RecallProjectID, UserID, ProjectName query.Column
}{
	RecallProjectID: recallProjectsTable.Col("recall_project_id"),
	UserID:          recallProjectsTable.Col("user_id"),
	ProjectName:     recallProjectsTable.Col("project_name"),
}

var recalls = struct {
	RecallID, UserID, RecallProjectID, RecallTitle, Recall query.Column
}{
	RecallID:        recallsTable.Col("recall_id"),
	UserID:          recallsTable.Col("user_id"),
	RecallProjectID: recallsTable.Col("recall_project_id"),
	RecallTitle:     recallsTable.Col("recall_title"),
	Recall:          recallsTable.Col("recall"),
}
