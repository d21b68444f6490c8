package timezone

import "time"

// Clock returns the current instant. Use cases hold one so tests can pin time.
type Clock func() time.Time

// Now is the production clock. Everything is stored and compared in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
