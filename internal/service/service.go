package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "pomodoros/internal/errors"
)

// Clock returns the current time. Services take one so tests can pin dates.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// today truncates t to its calendar day in UTC.
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeleteResult reports how many rows a delete removed. Zero is not an error.
type DeleteResult struct {
	Deleted int64
}

// Detail is the human-readable outcome of the delete.
func (r DeleteResult) Detail() string {
	if r.Deleted > 0 {
		return "deletion was successful"
	}
	return "there were no deletions"
}

// requireName trims name and checks it fits a 255 character column.
func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	if utf8.RuneCountInString(name) > 255 {
		return "", fmt.Errorf("%w: %s must be at most 255 characters", apperrors.ErrValidation, field)
	}
	return name, nil
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, what, id)
}
