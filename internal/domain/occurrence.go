package domain

import (
	"fmt"
	"time"
)

// SpawnLayout is the persisted timestamp shape. The store keeps spawn times
// as strings in the configured civil timezone; this layout is the single
// format/parse point for round-trip fidelity. Minute precision is the unit
// of truth everywhere — seconds are discarded on entry.
const SpawnLayout = "2006-01-02 15:04"

// FormatSpawn renders an instant in the persisted form.
func FormatSpawn(t time.Time) string { return t.Format(SpawnLayout) }

// ParseSpawn parses a persisted spawn string in the given location.
func ParseSpawn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(SpawnLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse spawn %q: %w", s, err)
	}
	return t, nil
}

// NextSpawnFromNow computes the next spawn for a kill confirmed right now:
// now (to the minute) plus the period.
func NextSpawnFromNow(now time.Time, p Period) time.Time {
	return now.Truncate(time.Minute).Add(p.Duration())
}

// NextSpawnFromKillClock computes the next spawn for a kill reported only as
// a wall-clock time, meaning "today" or "yesterday". The candidate instant is
// today's date combined with the reported time; if that lands strictly in the
// future the kill actually happened yesterday, so a day is subtracted. The
// resolved kill instant is therefore always <= now, which is what keeps a
// late-evening kill reported just after midnight from drifting a day forward.
func NextSpawnFromKillClock(clock string, p Period, now time.Time) (time.Time, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, clock)
	}
	kill := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if kill.After(now) {
		kill = kill.AddDate(0, 0, -1)
	}
	return kill.Add(p.Duration()), nil
}

// MinutesUntil returns the whole minutes from now until next, truncated
// toward zero. Alerts and listings both quote minutes through this so the
// rounding rule cannot diverge between them.
func MinutesUntil(next, now time.Time) int {
	return int(next.Sub(now) / time.Minute)
}
