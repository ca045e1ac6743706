package domain

import "time"

type OTPCode struct {
	ID        string
	Email     string // not necessarily a registered user
	Code      string // 6 ASCII digits
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Redeemable reports whether the code can still complete a login at now.
func (c OTPCode) Redeemable(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
