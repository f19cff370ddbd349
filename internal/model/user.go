package model

import "time"

// User represents an account owner. Every other row references it by UserID.
type User struct {
	UserID       string     `json:"user_id" gorm:"column:user_id;type:char(36);primaryKey"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	FirstName    string     `json:"first_name" gorm:"column:first_name;size:255;not null"`
	LastName     string     `json:"last_name" gorm:"column:last_name;size:255;not null"`
	BirthDate    *time.Time `json:"birth_date,omitempty" gorm:"column:birth_date;type:date"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
}

// TableName pins the table name used by migrations.
func (User) TableName() string { return "users" }
