// Package scanner implements the spawn notification loop: a recurring pass
// over the scheduled bosses that alerts exactly once as each one approaches
// its next spawn.
package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Takaroz/botboss/internal/domain"
)

// Registry is the slice of the store the scanner reads.
type Registry interface {
	ListScheduled(ctx context.Context) ([]domain.Boss, error)
}

// Alerter delivers one alert text to a chat. telegram.Router implements this.
type Alerter interface {
	SendMessage(chatID int64, text string) error
}

const (
	defaultInterval = 60 * time.Second
	defaultWindow   = 12 * time.Minute
)

// Scanner periodically reads the registry and alerts on bosses whose next
// spawn has entered the notification window (0, W].
//
// The window is usually wider than the scan interval, so a boss stays "due"
// across several consecutive ticks. notified remembers, per boss, the raw
// next-spawn value an alert was already sent for; the entry is dropped when
// the spawn elapses or a new kill moves the schedule, which re-arms the boss.
// The map lives only in memory: after a restart the worst case is one extra
// alert, never a storm.
type Scanner struct {
	repo     Registry
	log      *zap.Logger
	clock    domain.Clock
	alerter  Alerter
	chatID   int64
	interval time.Duration
	window   time.Duration
	notified map[int64]string
}

// New creates a Scanner alerting into the given chat. Non-positive interval
// or window fall back to the defaults (60s scan, 12m window).
func New(repo Registry, log *zap.Logger, clock domain.Clock, alerter Alerter, chatID int64, interval, window time.Duration) *Scanner {
	if interval <= 0 {
		interval = defaultInterval
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &Scanner{
		repo:     repo,
		log:      log,
		clock:    clock,
		alerter:  alerter,
		chatID:   chatID,
		interval: interval,
		window:   window,
		notified: make(map[int64]string),
	}
}

// Run starts the loop until ctx is canceled. Ticks execute synchronously in
// this goroutine, so two scans can never overlap; if a tick overruns, the
// ticker simply drops the missed firing.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scanner started",
		zap.Duration("interval", s.interval),
		zap.Duration("window", s.window),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scanner stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one evaluation pass over all scheduled bosses.
func (s *Scanner) tick(ctx context.Context) {
	now := s.clock.Now().Truncate(time.Minute)

	bosses, err := s.repo.ListScheduled(ctx)
	if err != nil {
		s.log.Error("list scheduled failed", zap.Error(err))
		return
	}

	live := make(map[int64]struct{}, len(bosses))
	deliveryDown := false

	for i := range bosses {
		b := &bosses[i]
		live[b.ID] = struct{}{}

		next, err := domain.ParseSpawn(b.NextSpawn, now.Location())
		if err != nil {
			// Corrupt row: skip it, never abort the pass for the others.
			s.log.Warn("unparseable next spawn, skipping",
				zap.String("boss", b.Name),
				zap.String("raw", b.NextSpawn),
				zap.Error(err),
			)
			continue
		}

		if prev, ok := s.notified[b.ID]; ok && prev != b.NextSpawn {
			// Rescheduled since the last alert; re-arm.
			delete(s.notified, b.ID)
		}

		diff := next.Sub(now)
		if diff <= 0 {
			// Spawn elapsed; suppression resets for the next kill cycle.
			delete(s.notified, b.ID)
			continue
		}
		if diff > s.window {
			continue
		}
		if s.notified[b.ID] == b.NextSpawn {
			continue
		}
		if deliveryDown {
			continue
		}

		if err := s.alerter.SendMessage(s.chatID, alertText(b, next, now)); err != nil {
			// Report the sink once per tick; the boss stays un-notified so
			// the next tick retries while it remains in the window.
			s.log.Error("alert delivery failed", zap.Error(err), zap.Int64("chatID", s.chatID))
			deliveryDown = true
			continue
		}
		s.notified[b.ID] = b.NextSpawn
		s.log.Info("spawn alert sent",
			zap.String("boss", b.Name),
			zap.String("next", b.NextSpawn),
			zap.Int("minutes_left", domain.MinutesUntil(next, now)),
		)
	}

	// Drop state for bosses removed from the registry.
	for id := range s.notified {
		if _, ok := live[id]; !ok {
			delete(s.notified, id)
		}
	}
}

func alertText(b *domain.Boss, next, now time.Time) string {
	name := b.Name
	if b.DisplayName != "" {
		name = b.DisplayName
	}
	text := fmt.Sprintf("⏰ %s spawns in %d min (%s)",
		name, domain.MinutesUntil(next, now), next.Format("15:04"))
	if b.Location != "" {
		text += " at " + b.Location
	}
	return text
}
