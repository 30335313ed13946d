package main

import (
	"time"
)

var _ Clocker = (*Clock)(nil) // ensure Clock implements Clocker.

// Clocker abstracts the current time so handlers stamping uptime and
// maintenance windows can be tested against a fixed clock.
type Clocker interface {
	Now() time.Time
}

// Clock is the real time source of the running catalog api.
type Clock struct {
	tz *time.Location
}

// NewClock provides a Clock reporting UTC time in production
// and local time in development.
func NewClock(isProd bool) *Clock {
	if isProd {
		return &Clock{time.UTC}
	}
	return &Clock{time.Local}
}

// Now returns the current time in the configured timezone.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
