package model

// Category groups projects and pomodoros for one user.
type Category struct {
	CategoryID   int64  `json:"category_id" gorm:"column:category_id;primaryKey;autoIncrement"`
	UserID       string `json:"-" gorm:"column:user_id;type:char(36);not null;index"`
	CategoryName string `json:"category_name" gorm:"column:category_name;size:255;not null"`
}

func (Category) TableName() string { return "categories" }
