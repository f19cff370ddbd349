package model

import "time"

// Project belongs to exactly one category. EndDate and CanceledDate are
// independent terminal markers; both may be set.
type Project struct {
	ProjectID    int64      `json:"project_id" gorm:"column:project_id;primaryKey;autoIncrement"`
	UserID       string     `json:"-" gorm:"column:user_id;type:char(36);not null;index"`
	CategoryID   int64      `json:"category_id" gorm:"column:category_id;not null;index"`
	ProjectName  string     `json:"project_name" gorm:"column:project_name;size:255;not null"`
	StartDate    time.Time  `json:"start" gorm:"column:start_date;type:date;not null"`
	EndDate      *time.Time `json:"end" gorm:"column:end_date;type:date"`
	CanceledDate *time.Time `json:"canceled" gorm:"column:canceled_date;type:date"`
}

func (Project) TableName() string { return "projects" }

// ProjectRow is a project joined with its category name.
type ProjectRow struct {
	ProjectID    int64      `json:"project_id" gorm:"column:project_id"`
	CategoryID   int64      `json:"category_id" gorm:"column:category_id"`
	CategoryName string     `json:"category_name" gorm:"column:category_name"`
	ProjectName  string     `json:"project_name" gorm:"column:project_name"`
	StartDate    time.Time  `json:"start" gorm:"column:start_date"`
	EndDate      *time.Time `json:"end" gorm:"column:end_date"`
	CanceledDate *time.Time `json:"canceled" gorm:"column:canceled_date"`
}

// ProjectStatus filters projects by their terminal markers.
type ProjectStatus string

const (
	ProjectStatusAny    ProjectStatus = ""
	ProjectStatusOpen   ProjectStatus = "open"
	ProjectStatusClosed ProjectStatus = "closed"
)
