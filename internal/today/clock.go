package today

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The ticker reads it to decide which calendar day is "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
