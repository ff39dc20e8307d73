// Package tracker exposes the boss-tracking operations the chat front end
// calls: registry edits, kill events and the incoming-spawn listing. All
// time math goes through the domain package; all persistence through the
// store.
package tracker

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Takaroz/botboss/internal/domain"
	"github.com/Takaroz/botboss/internal/store"
)

const suggestLimit = 25

// Service implements the boundary operations over the boss registry.
type Service struct {
	repo  store.Repo
	clock domain.Clock
	log   *zap.Logger
}

// New creates a tracker service.
func New(repo store.Repo, clock domain.Clock, log *zap.Logger) *Service {
	return &Service{repo: repo, clock: clock, log: log}
}

// AddBoss registers a new boss, unscheduled until its first kill is recorded.
func (s *Service) AddBoss(ctx context.Context, name, location, periodStr string) (*domain.Boss, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	period, err := domain.ParsePeriod(periodStr)
	if err != nil {
		return nil, err
	}

	b := &domain.Boss{
		Name:      name,
		Location:  strings.TrimSpace(location),
		Period:    period,
		CreatedAt: s.clock.Now(),
	}
	id, err := s.repo.CreateBoss(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	s.log.Info("boss added", zap.String("name", name), zap.String("period", period.String()))
	return b, nil
}

// ListBosses returns every registered boss ordered by id.
func (s *Service) ListBosses(ctx context.Context) ([]domain.Boss, error) {
	return s.repo.ListBosses(ctx)
}

// RemoveBoss deletes a boss by id.
func (s *Service) RemoveBoss(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBoss(ctx, id); err != nil {
		return err
	}
	s.log.Info("boss removed", zap.Int64("id", id))
	return nil
}

// RemoveBossByName deletes a boss by its unique name.
func (s *Service) RemoveBossByName(ctx context.Context, name string) error {
	b, err := s.repo.GetBossByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	return s.RemoveBoss(ctx, b.ID)
}

// EditBoss updates a boss's name, location and/or period. Empty arguments
// leave the corresponding field unchanged. Validation happens before any
// write, so a bad period never half-applies an edit.
func (s *Service) EditBoss(ctx context.Context, id int64, newName, newLocation, newPeriod string) (*domain.Boss, error) {
	b, err := s.repo.GetBoss(ctx, id)
	if err != nil {
		return nil, err
	}

	if p := strings.TrimSpace(newPeriod); p != "" {
		period, err := domain.ParsePeriod(p)
		if err != nil {
			return nil, err
		}
		b.Period = period
	}
	if n := strings.TrimSpace(newName); n != "" {
		b.Name = n
	}
	if l := strings.TrimSpace(newLocation); l != "" {
		b.Location = l
	}

	if err := s.repo.UpdateBoss(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("boss edited", zap.Int64("id", id), zap.String("name", b.Name))
	return b, nil
}

// RecordKillNow records a kill at the current instant and returns the
// computed next spawn in persisted form.
func (s *Service) RecordKillNow(ctx context.Context, name string) (string, error) {
	b, err := s.repo.GetBossByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	next := domain.NextSpawnFromNow(s.clock.Now(), b.Period)
	return s.setNextSpawn(ctx, b, next)
}

// RecordKillAt records a kill reported as a wall-clock time ("today or
// yesterday") and returns the computed next spawn. A malformed time fails
// before anything is written.
func (s *Service) RecordKillAt(ctx context.Context, name, killClock string) (string, error) {
	b, err := s.repo.GetBossByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	next, err := domain.NextSpawnFromKillClock(killClock, b.Period, s.clock.Now())
	if err != nil {
		return "", err
	}
	return s.setNextSpawn(ctx, b, next)
}

func (s *Service) setNextSpawn(ctx context.Context, b *domain.Boss, next time.Time) (string, error) {
	raw := domain.FormatSpawn(next)
	if err := s.repo.SetNextSpawn(ctx, b.ID, raw); err != nil {
		return "", err
	}
	s.log.Info("kill recorded",
		zap.String("boss", b.Name),
		zap.String("next_spawn", raw),
	)
	return raw, nil
}

// Incoming is one row of the upcoming-spawns listing.
type Incoming struct {
	Boss        domain.Boss
	At          time.Time // zero when unscheduled or corrupt
	MinutesLeft int       // negative once elapsed
	Upcoming    bool      // scheduled and still ahead of now
}

// ListIncoming returns all bosses sorted for display: upcoming spawns
// ascending by time, then elapsed ones, then unscheduled (and any with a
// corrupt stored timestamp) trailing.
func (s *Service) ListIncoming(ctx context.Context) ([]Incoming, error) {
	bosses, err := s.repo.ListBosses(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().Truncate(time.Minute)

	res := make([]Incoming, 0, len(bosses))
	for _, b := range bosses {
		in := Incoming{Boss: b}
		if b.Scheduled() {
			at, err := domain.ParseSpawn(b.NextSpawn, now.Location())
			if err != nil {
				s.log.Warn("unparseable next spawn in listing",
					zap.String("boss", b.Name), zap.String("raw", b.NextSpawn))
			} else {
				in.At = at
				in.MinutesLeft = domain.MinutesUntil(at, now)
				in.Upcoming = at.After(now)
			}
		}
		res = append(res, in)
	}

	sort.SliceStable(res, func(i, j int) bool {
		ri, rj := incomingRank(res[i]), incomingRank(res[j])
		if ri != rj {
			return ri < rj
		}
		if ri == 2 {
			return res[i].Boss.ID < res[j].Boss.ID
		}
		return res[i].At.Before(res[j].At)
	})
	return res, nil
}

// incomingRank orders listing rows: upcoming first, elapsed next,
// unscheduled/corrupt last.
func incomingRank(in Incoming) int {
	switch {
	case in.Upcoming:
		return 0
	case !in.At.IsZero():
		return 1
	default:
		return 2
	}
}

// Suggest returns boss names matching q, for autocomplete-style lookups.
func (s *Service) Suggest(ctx context.Context, q string) ([]string, error) {
	return s.repo.SearchNames(ctx, strings.TrimSpace(q), suggestLimit)
}

// IsValidation reports whether err is a user-correctable input error, as
// opposed to a missing boss or an internal failure.
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrDuplicateName) ||
		errors.Is(err, domain.ErrInvalidPeriod) ||
		errors.Is(err, domain.ErrInvalidTimeOfDay)
}
