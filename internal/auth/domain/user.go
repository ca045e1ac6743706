package domain

import "time"

type User struct {
	ID        string
	Email     string // unique, case-sensitive as stored
	Role      Role
	LastLogin *time.Time // nil until the first completed login
	CreatedAt time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Identity projects a user for a request authenticated with method.
func (u User) Identity(method AuthMethod) Identity {
	return Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Method: method,
	}
}
