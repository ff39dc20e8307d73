package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Takaroz/botboss/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "botboss.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newBoss(name, location, period string) *domain.Boss {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		panic(err)
	}
	return &domain.Boss{
		Name:      name,
		Location:  location,
		Period:    p,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGetBoss(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateBoss(ctx, newBoss("Queen Ant", "Ant Nest", "06:00"))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetBoss(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Queen Ant", got.Name)
	require.Equal(t, "Ant Nest", got.Location)
	require.Equal(t, "06:00", got.Period.String())
	require.False(t, got.Scheduled())

	byName, err := repo.GetBossByName(ctx, "Queen Ant")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
}

func TestGetBoss_NotFound(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetBoss(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetBossByName(ctx, "Nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBoss_DuplicateName(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateBoss(ctx, newBoss("Core", "Cruma Tower", "08:00"))
	require.NoError(t, err)

	_, err = repo.CreateBoss(ctx, newBoss("Core", "Elsewhere", "04:00"))
	require.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestListScheduled_FiltersUnscheduled(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	idA, err := repo.CreateBoss(ctx, newBoss("Orfen", "Sea of Spores", "12:00"))
	require.NoError(t, err)
	_, err = repo.CreateBoss(ctx, newBoss("Zaken", "Devil's Isle", "18:00"))
	require.NoError(t, err)

	require.NoError(t, repo.SetNextSpawn(ctx, idA, "2025-06-01 14:00"))

	scheduled, err := repo.ListScheduled(ctx)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	require.Equal(t, "Orfen", scheduled[0].Name)
	require.Equal(t, "2025-06-01 14:00", scheduled[0].NextSpawn)

	all, err := repo.ListBosses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSetNextSpawn_OverwriteAndClear(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateBoss(ctx, newBoss("Baium", "Tower of Insolence", "05:00"))
	require.NoError(t, err)

	require.NoError(t, repo.SetNextSpawn(ctx, id, "2025-06-01 14:00"))
	require.NoError(t, repo.SetNextSpawn(ctx, id, "2025-06-01 20:00"))

	got, err := repo.GetBoss(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "2025-06-01 20:00", got.NextSpawn)

	require.NoError(t, repo.SetNextSpawn(ctx, id, ""))
	got, err = repo.GetBoss(ctx, id)
	require.NoError(t, err)
	require.False(t, got.Scheduled())

	require.ErrorIs(t, repo.SetNextSpawn(ctx, 999, "2025-06-01 20:00"), domain.ErrNotFound)
}

func TestUpsertBoss_PreservesSchedule(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateBoss(ctx, newBoss("Antharas", "Lair", "12:00"))
	require.NoError(t, err)
	require.NoError(t, repo.SetNextSpawn(ctx, id, "2025-06-02 02:00"))

	refreshed := newBoss("Antharas", "Antharas Lair", "16:00")
	refreshed.SpawnChance = "33%"
	require.NoError(t, repo.UpsertBoss(ctx, refreshed))

	got, err := repo.GetBoss(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Antharas Lair", got.Location)
	require.Equal(t, "16:00", got.Period.String())
	require.Equal(t, "33%", got.SpawnChance)
	require.Equal(t, "2025-06-02 02:00", got.NextSpawn, "upsert must not clobber the schedule")
}

func TestUpdateBoss_RenameAndConflict(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateBoss(ctx, newBoss("Golkonda", "Hellbound", "09:00"))
	require.NoError(t, err)
	_, err = repo.CreateBoss(ctx, newBoss("Hestia", "Hellbound", "09:00"))
	require.NoError(t, err)

	b, err := repo.GetBoss(ctx, id)
	require.NoError(t, err)
	b.Name = "Golkonda the Longhorn"
	require.NoError(t, repo.UpdateBoss(ctx, b))

	b.Name = "Hestia"
	require.ErrorIs(t, repo.UpdateBoss(ctx, b), domain.ErrDuplicateName)
}

func TestDeleteBoss(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateBoss(ctx, newBoss("Cabrio", "Forest", "03:30"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBoss(ctx, id))
	require.ErrorIs(t, repo.DeleteBoss(ctx, id), domain.ErrNotFound)
}

func TestSearchNames(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, n := range []string{"Queen Ant", "Ant Larva", "Core"} {
		_, err := repo.CreateBoss(ctx, newBoss(n, "", "06:00"))
		require.NoError(t, err)
	}

	names, err := repo.SearchNames(ctx, "Ant", 25)
	require.NoError(t, err)
	require.Equal(t, []string{"Ant Larva", "Queen Ant"}, names)

	names, err = repo.SearchNames(ctx, "ore", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Core"}, names)
}
