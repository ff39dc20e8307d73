// Package catalog loads a YAML boss catalogue and seeds the registry with
// well-formed upserts. Free-form import parsing (screenshots, pasted tables)
// stays outside the engine; this file format is the normalized handoff.
package catalog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Takaroz/botboss/internal/domain"
	"github.com/Takaroz/botboss/internal/store"
)

// Entry is one catalogue row.
type Entry struct {
	Name        string `yaml:"name"`
	Location    string `yaml:"location"`
	Period      string `yaml:"period"` // HH:MM
	DisplayName string `yaml:"display_name"`
	SpawnChance string `yaml:"spawn_chance"`
}

// Catalog is a parsed boss catalogue file.
type Catalog struct {
	Bosses []Entry `yaml:"bosses"`
}

// Load reads and validates a catalogue file. Every entry must carry a name
// and a parseable period; a single bad entry rejects the whole file so a
// partial import never goes unnoticed.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, e := range c.Bosses {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, domain.ErrEmptyName)
		}
		if _, err := domain.ParsePeriod(e.Period); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.Name, err)
		}
	}
	return &c, nil
}

// Seed upserts every catalogue entry into the registry. Existing bosses keep
// their recorded schedules; only descriptive fields and the period refresh.
func (c *Catalog) Seed(ctx context.Context, repo store.Repo, clock domain.Clock, log *zap.Logger) error {
	for _, e := range c.Bosses {
		period, err := domain.ParsePeriod(e.Period)
		if err != nil {
			return fmt.Errorf("catalog entry %q: %w", e.Name, err)
		}
		b := &domain.Boss{
			Name:        e.Name,
			Location:    e.Location,
			Period:      period,
			DisplayName: e.DisplayName,
			SpawnChance: e.SpawnChance,
			CreatedAt:   clock.Now(),
		}
		if err := repo.UpsertBoss(ctx, b); err != nil {
			return fmt.Errorf("seed %q: %w", e.Name, err)
		}
	}
	log.Info("catalog seeded", zap.Int("bosses", len(c.Bosses)))
	return nil
}
