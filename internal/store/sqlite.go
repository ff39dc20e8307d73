package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Takaroz/botboss/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single connection: SQLite is a single-writer engine, and one conn also
	// makes a command-handler write and a scanner read strictly ordered.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

const bossColumns = "id, name, location, period, next_spawn, display_name, spawn_chance, created_at"

// CreateBoss inserts a new boss and returns its assigned id. The new row is
// unscheduled; a kill event sets next_spawn later.
func (r *SQLiteRepo) CreateBoss(ctx context.Context, b *domain.Boss) (int64, error) {
	if b == nil {
		return 0, errors.New("nil boss")
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bosses (name, location, period, next_spawn, display_name, spawn_chance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.Location, b.Period.String(), toNullString(b.NextSpawn),
		b.DisplayName, b.SpawnChance, b.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateName, b.Name)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertBoss inserts a boss or, if the name is already registered, refreshes
// its descriptive fields and period. The schedule survives a re-import: an
// upsert never touches next_spawn on an existing row.
func (r *SQLiteRepo) UpsertBoss(ctx context.Context, b *domain.Boss) error {
	if b == nil {
		return errors.New("nil boss")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bosses (name, location, period, next_spawn, display_name, spawn_chance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			location     = excluded.location,
			period       = excluded.period,
			display_name = excluded.display_name,
			spawn_chance = excluded.spawn_chance`,
		b.Name, b.Location, b.Period.String(), toNullString(b.NextSpawn),
		b.DisplayName, b.SpawnChance, b.CreatedAt.Unix(),
	)
	return err
}

// GetBoss returns a boss by id, or domain.ErrNotFound.
func (r *SQLiteRepo) GetBoss(ctx context.Context, id int64) (*domain.Boss, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bossColumns+" FROM bosses WHERE id = ?", id)
	return scanBoss(row)
}

// GetBossByName returns a boss by its unique name, or domain.ErrNotFound.
func (r *SQLiteRepo) GetBossByName(ctx context.Context, name string) (*domain.Boss, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bossColumns+" FROM bosses WHERE name = ?", name)
	return scanBoss(row)
}

// ListBosses returns every registered boss ordered by id.
func (r *SQLiteRepo) ListBosses(ctx context.Context) ([]domain.Boss, error) {
	return r.list(ctx, "SELECT "+bossColumns+" FROM bosses ORDER BY id ASC")
}

// ListScheduled returns bosses with a recorded next spawn, ordered by id.
// The stable order keeps scan ticks deterministic.
func (r *SQLiteRepo) ListScheduled(ctx context.Context) ([]domain.Boss, error) {
	return r.list(ctx, `
		SELECT `+bossColumns+` FROM bosses
		WHERE next_spawn IS NOT NULL AND next_spawn != ''
		ORDER BY id ASC`)
}

// SetNextSpawn overwrites a boss's next spawn. Writing an empty string
// clears the schedule. The write is a single statement, so the scanner sees
// either the old or the new value, never a partial one.
func (r *SQLiteRepo) SetNextSpawn(ctx context.Context, id int64, raw string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bosses SET next_spawn = ? WHERE id = ?", toNullString(raw), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpdateBoss rewrites a boss's identity, period and descriptive fields.
func (r *SQLiteRepo) UpdateBoss(ctx context.Context, b *domain.Boss) error {
	if b == nil {
		return errors.New("nil boss")
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE bosses
		SET name = ?, location = ?, period = ?, display_name = ?, spawn_chance = ?
		WHERE id = ?`,
		b.Name, b.Location, b.Period.String(), b.DisplayName, b.SpawnChance, b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, b.Name)
		}
		return err
	}
	return requireAffected(res)
}

// DeleteBoss removes a boss by id, or returns domain.ErrNotFound.
func (r *SQLiteRepo) DeleteBoss(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bosses WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SearchNames returns up to limit boss names containing q, for
// autocomplete-style suggestions.
func (r *SQLiteRepo) SearchNames(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM bosses WHERE name LIKE ? ORDER BY name ASC LIMIT ?",
		"%"+q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *SQLiteRepo) list(ctx context.Context, query string) ([]domain.Boss, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Boss
	for rows.Next() {
		b, err := scanBossRow(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBossRow(row rowScanner) (*domain.Boss, error) {
	var (
		b         domain.Boss
		periodRaw string
		nextNS    sql.NullString
		createdAt int64
	)
	if err := row.Scan(
		&b.ID, &b.Name, &b.Location, &periodRaw, &nextNS,
		&b.DisplayName, &b.SpawnChance, &createdAt,
	); err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(periodRaw)
	if err != nil {
		return nil, fmt.Errorf("boss %d: stored period: %w", b.ID, err)
	}
	b.Period = p
	b.NextSpawn = fromNullString(nextNS)
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &b, nil
}

func scanBoss(row *sql.Row) (*domain.Boss, error) {
	b, err := scanBossRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
