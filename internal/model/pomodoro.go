package model

import (
	"fmt"
	"time"

	apperrors "pomodoros/internal/errors"
)

// MinPomodoroMinutes is the shortest work session that can be recorded.
const MinPomodoroMinutes = 25

// Pomodoro is one timed work session.
type Pomodoro struct {
	PomodoroID   int64     `json:"pomodoro_id" gorm:"column:pomodoro_id;primaryKey;autoIncrement"`
	ProjectID    int64     `json:"project_id" gorm:"column:project_id;not null;index"`
	CategoryID   int64     `json:"category_id" gorm:"column:category_id;not null;index"`
	UserID       string    `json:"-" gorm:"column:user_id;type:char(36);not null;index"`
	Duration     int       `json:"duration" gorm:"column:duration;not null"`
	PomodoroDate time.Time `json:"pomodoro_date" gorm:"column:pomodoro_date;not null"`
	Satisfaction *int      `json:"-" gorm:"column:pomodoro_satisfaction"`
}

func (Pomodoro) TableName() string { return "pomodoros" }

// PomodoroRow is a pomodoro joined with its project and category names.
type PomodoroRow struct {
	PomodoroID   int64     `gorm:"column:pomodoro_id"`
	Duration     int       `gorm:"column:duration"`
	PomodoroDate time.Time `gorm:"column:pomodoro_date"`
	ProjectID    int64     `gorm:"column:project_id"`
	ProjectName  string    `gorm:"column:project_name"`
	CategoryID   int64     `gorm:"column:category_id"`
	CategoryName string    `gorm:"column:category_name"`
	Satisfaction *int64    `gorm:"column:pomodoro_satisfaction"`
}

// Satisfaction is the stored three-state mark of a pomodoro.
type Satisfaction int

const (
	SatisfactionUnset Satisfaction = 0
	SatisfactionGood  Satisfaction = 1
	SatisfactionBad   Satisfaction = 2
)

// SatisfactionFromCode reads a nullable stored code. NULL, 0 and unknown
// codes are unset.
func SatisfactionFromCode(code *int64) Satisfaction {
	if code == nil {
		return SatisfactionUnset
	}
	switch Satisfaction(*code) {
	case SatisfactionGood:
		return SatisfactionGood
	case SatisfactionBad:
		return SatisfactionBad
	default:
		return SatisfactionUnset
	}
}

// ParseSatisfaction accepts exactly "good" or "bad".
func ParseSatisfaction(label string) (Satisfaction, error) {
	switch label {
	case "good":
		return SatisfactionGood, nil
	case "bad":
		return SatisfactionBad, nil
	default:
		return SatisfactionUnset, fmt.Errorf("%w: pomodoro satisfaction has to be either 'good' or 'bad', got %q", apperrors.ErrValidation, label)
	}
}

// Label is the display form of s.
func (s Satisfaction) Label() string {
	switch s {
	case SatisfactionGood:
		return "good"
	case SatisfactionBad:
		return "bad"
	default:
		return "missing"
	}
}

// PomodoroView is the response form of a PomodoroRow with the satisfaction
// rendered as a label.
type PomodoroView struct {
	PomodoroID   int64     `json:"pomodoro_id"`
	Duration     int       `json:"duration"`
	PomodoroDate time.Time `json:"pomodoro_date"`
	ProjectID    int64     `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Satisfaction string    `json:"pomodoro_satisfaction"`
}

// View renders the row for a response.
func (r PomodoroRow) View() PomodoroView {
	return PomodoroView{
		PomodoroID:   r.PomodoroID,
		Duration:     r.Duration,
		PomodoroDate: r.PomodoroDate,
		ProjectID:    r.ProjectID,
		ProjectName:  r.ProjectName,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Satisfaction: SatisfactionFromCode(r.Satisfaction).Label(),
	}
}
