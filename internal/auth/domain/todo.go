package domain

import "time"

// DailyTodo is the single free-text note a user keeps. Writes overwrite it.
type DailyTodo struct {
	ID        string
	UserID    string
	Content   string
	UpdatedAt time.Time
}
