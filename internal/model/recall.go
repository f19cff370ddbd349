package model

// RecallProject is a notes folder. Names are unique per user.
type RecallProject struct {
	RecallProjectID int64  `json:"recall_project_id" gorm:"column:recall_project_id;primaryKey;autoIncrement"`
	UserID          string `json:"-" gorm:"column:user_id;type:char(36);not null;uniqueIndex:uk_recall_projects_user_name"`
	ProjectName     string `json:"project_name" gorm:"column:project_name;size:255;not null;uniqueIndex:uk_recall_projects_user_name"`
}

func (RecallProject) TableName() string { return "recall_projects" }

// Recall is a note inside a recall project.
type Recall struct {
	RecallID        int64  `json:"recall_id" gorm:"column:recall_id;primaryKey;autoIncrement"`
	UserID          string `json:"-" gorm:"column:user_id;type:char(36);not null;index"`
	RecallProjectID int64  `json:"recall_project_id" gorm:"column:recall_project_id;not null;index"`
	RecallTitle     string `json:"recall_title" gorm:"column:recall_title;size:255;not null"`
	Body            string `json:"recall" gorm:"column:recall;type:text;not null"`
}

func (Recall) TableName() string { return "recalls" }

// RecallRow is a recall joined with its folder name.
type RecallRow struct {
	RecallID        int64  `json:"recall_id" gorm:"column:recall_id"`
	RecallProjectID int64  `json:"recall_project_id" gorm:"column:recall_project_id"`
	ProjectName     string `json:"project_name" gorm:"column:project_name"`
	RecallTitle     string `json:"recall_title" gorm:"column:recall_title"`
	Body            string `json:"recall" gorm:"column:recall"`
}

// MaxRecallTitle is the longest accepted recall title, in characters.
const MaxRecallTitle = 255
