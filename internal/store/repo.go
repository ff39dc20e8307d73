package store

import (
	"context"

	"github.com/Takaroz/botboss/internal/domain"
)

// Repo defines storage operations over the boss registry. The registry is
// the single source of truth: the scanner re-reads it before every tick and
// never caches rows across ticks.
type Repo interface {
	CreateBoss(ctx context.Context, b *domain.Boss) (int64, error)
	UpsertBoss(ctx context.Context, b *domain.Boss) error
	GetBoss(ctx context.Context, id int64) (*domain.Boss, error)
	GetBossByName(ctx context.Context, name string) (*domain.Boss, error)
	ListBosses(ctx context.Context) ([]domain.Boss, error)
	ListScheduled(ctx context.Context) ([]domain.Boss, error)
	SetNextSpawn(ctx context.Context, id int64, raw string) error
	UpdateBoss(ctx context.Context, b *domain.Boss) error
	DeleteBoss(ctx context.Context, id int64) error
	SearchNames(ctx context.Context, q string, limit int) ([]string, error)
	Close() error
}
