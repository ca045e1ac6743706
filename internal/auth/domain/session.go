package domain

import "time"

type Session struct {
	ID        string
	UserID    string
	Token     string // 64 hex characters
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
