package domain

import "time"

// Boss is one tracked boss: identity, respawn period and the next predicted
// spawn. NextSpawn holds the raw persisted "YYYY-MM-DD HH:MM" string; empty
// means unscheduled — never alert. It stays raw so one corrupt row is caught
// where it is read, not when the whole list is loaded.
type Boss struct {
	ID          int64
	Name        string
	Location    string
	Period      Period
	NextSpawn   string
	DisplayName string
	SpawnChance string
	CreatedAt   time.Time
}

// Scheduled reports whether a next spawn has been recorded for this boss.
func (b *Boss) Scheduled() bool { return b.NextSpawn != "" }
