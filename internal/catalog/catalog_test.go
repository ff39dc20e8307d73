package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Takaroz/botboss/internal/domain"
	"github.com/Takaroz/botboss/internal/store"
)

const sampleCatalog = `bosses:
  - name: Queen Ant
    location: Ant Nest
    period: "06:00"
    spawn_chance: "100%"
  - name: Core
    location: Cruma Tower
    period: "08:00"
    display_name: Core the Machine
`

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	c, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	require.Len(t, c.Bosses, 2)
	require.Equal(t, "Queen Ant", c.Bosses[0].Name)
	require.Equal(t, "Core the Machine", c.Bosses[1].DisplayName)
}

func TestLoad_RejectsBadEntries(t *testing.T) {
	_, err := Load(writeCatalog(t, "bosses:\n  - name: X\n    period: \"00:00\"\n"))
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = Load(writeCatalog(t, "bosses:\n  - location: nowhere\n    period: \"06:00\"\n"))
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = Load(writeCatalog(t, "not: [valid"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSeed_UpsertsAndPreservesSchedule(t *testing.T) {
	ctx := context.Background()
	repo, err := store.OpenSQLite(ctx, filepath.Join(t.TempDir(), "botboss.db"))
	require.NoError(t, err)
	defer repo.Close()

	clk := fixedClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	log := zap.NewNop()

	c, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	require.NoError(t, c.Seed(ctx, repo, clk, log))

	b, err := repo.GetBossByName(ctx, "Queen Ant")
	require.NoError(t, err)
	require.Equal(t, "Ant Nest", b.Location)

	// record a kill, then reseed: the schedule must survive
	require.NoError(t, repo.SetNextSpawn(ctx, b.ID, "2025-06-01 14:00"))
	require.NoError(t, c.Seed(ctx, repo, clk, log))

	b, err = repo.GetBossByName(ctx, "Queen Ant")
	require.NoError(t, err)
	require.Equal(t, "2025-06-01 14:00", b.NextSpawn)
}
