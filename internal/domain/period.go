package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is the interval between a kill and the next spawn, in whole minutes.
// Persisted and displayed as "HH:MM".
type Period int

// ParsePeriod parses "HH:MM" (hours 0..23, minutes 0..59) into a Period.
// A zero period is rejected: a boss that respawns instantly is a data-entry
// mistake, not a schedule.
func ParsePeriod(s string) (Period, error) {
	h, m, err := parseClock(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPeriod, s)
	}
	p := Period(h*60 + m)
	if p == 0 {
		return 0, fmt.Errorf("%w: period must be greater than zero", ErrInvalidPeriod)
	}
	return p, nil
}

// Duration converts the period to a time.Duration.
func (p Period) Duration() time.Duration { return time.Duration(p) * time.Minute }

// String formats the period back to "HH:MM".
func (p Period) String() string {
	return fmt.Sprintf("%02d:%02d", int(p)/60, int(p)%60)
}

// parseClock parses a wall-clock "HH:MM" value into hour and minute.
func parseClock(s string) (h, m int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err = strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return h, m, nil
}
