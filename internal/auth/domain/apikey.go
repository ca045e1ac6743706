package domain

import "time"

type APIKey struct {
	ID         string
	UserID     string
	Key        string // empty when loaded for listing
	Name       string
	IsActive   bool
	LastUsedAt *time.Time
	CreatedAt  time.Time
}
