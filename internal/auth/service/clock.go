package service

import "time"

// now returns the current UTC time from fn, or the wall clock if fn is nil.
func now(fn func() time.Time) time.Time {
	if fn == nil {
		return time.Now().UTC()
	}
	return fn().UTC()
}
