package domain

import "time"

// Clock supplies the current instant. All scheduling math runs against a
// single civil timezone, so the process owns exactly one Clock pinned to it.
type Clock interface {
	Now() time.Time
}

// TZClock is the real clock, pinned to a fixed location.
type TZClock struct {
	Loc *time.Location
}

func (c TZClock) Now() time.Time { return time.Now().In(c.Loc) }
