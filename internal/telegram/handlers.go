package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Takaroz/botboss/internal/domain"
	"github.com/Takaroz/botboss/internal/tracker"
)

// Multi-field arguments are separated by ";" so boss names and locations may
// contain spaces: /addboss Queen Ant;Ant Nest;06:00

func splitFields(arg string) []string {
	parts := strings.Split(arg, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (r *Router) handleAdd(ctx context.Context, chatID int64, arg string) {
	parts := splitFields(arg)
	if len(parts) != 3 {
		r.sendText(chatID, addUsage)
		return
	}
	b, err := r.svc.AddBoss(ctx, parts[0], parts[1], parts[2])
	if err != nil {
		r.replyError(chatID, err, addUsage)
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ Added %s at %s, respawns every %s", b.Name, b.Location, b.Period))
}

func (r *Router) handleList(ctx context.Context, chatID int64) {
	bosses, err := r.svc.ListBosses(ctx)
	if err != nil {
		r.replyError(chatID, err, "")
		return
	}
	if len(bosses) == 0 {
		r.sendText(chatID, "⚠️ No bosses registered yet. Use /addboss to add one.")
		return
	}
	var sb strings.Builder
	sb.WriteString("📋 Registered bosses:\n")
	for _, b := range bosses {
		next := "—"
		if b.Scheduled() {
			next = b.NextSpawn
		}
		fmt.Fprintf(&sb, "NO.%d %s — %s (%s) next: %s\n", b.ID, b.Name, b.Location, b.Period, next)
	}
	r.sendText(chatID, sb.String())
}

func (r *Router) handleDelete(ctx context.Context, chatID int64, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		// fall back to deletion by name
		if arg == "" {
			r.sendText(chatID, "Usage: /delboss <number|name>")
			return
		}
		if err := r.svc.RemoveBossByName(ctx, arg); err != nil {
			r.replyError(chatID, err, "")
			return
		}
		r.sendText(chatID, "🗑️ Removed "+arg)
		return
	}
	if err := r.svc.RemoveBoss(ctx, id); err != nil {
		r.replyError(chatID, err, "")
		return
	}
	r.sendText(chatID, fmt.Sprintf("🗑️ Removed boss NO.%d", id))
}

func (r *Router) handleEdit(ctx context.Context, chatID int64, arg string) {
	parts := splitFields(arg)
	if len(parts) < 2 || len(parts) > 4 {
		r.sendText(chatID, editUsage)
		return
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		r.sendText(chatID, editUsage)
		return
	}
	newName, newPeriod, newLocation := parts[1], "", ""
	if len(parts) >= 3 {
		newPeriod = parts[2]
	}
	if len(parts) == 4 {
		newLocation = parts[3]
	}
	b, err := r.svc.EditBoss(ctx, id, newName, newLocation, newPeriod)
	if err != nil {
		r.replyError(chatID, err, editUsage)
		return
	}
	r.sendText(chatID, fmt.Sprintf("✏️ Boss NO.%d is now %s (%s)", b.ID, b.Name, b.Period))
}

func (r *Router) handleKillNow(ctx context.Context, chatID int64, name string) {
	if name == "" {
		r.sendText(chatID, "Usage: /killnow <boss name>")
		return
	}
	next, err := r.svc.RecordKillNow(ctx, name)
	if err != nil {
		r.replyError(chatID, err, "")
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ %s will respawn at %s", name, next))
}

func (r *Router) handleKillAt(ctx context.Context, chatID int64, arg string) {
	// last token is the kill time, everything before it the boss name
	i := strings.LastIndexAny(arg, " \t")
	if i < 0 {
		r.sendText(chatID, "Usage: /killat <boss name> <HH:MM>")
		return
	}
	name := strings.TrimSpace(arg[:i])
	killClock := strings.TrimSpace(arg[i:])
	next, err := r.svc.RecordKillAt(ctx, name, killClock)
	if err != nil {
		r.replyError(chatID, err, "Usage: /killat <boss name> <HH:MM>")
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ %s killed at %s, respawns at %s", name, killClock, next))
}

func (r *Router) handleIncoming(ctx context.Context, chatID int64) {
	rows, err := r.svc.ListIncoming(ctx)
	if err != nil {
		r.replyError(chatID, err, "")
		return
	}
	if len(rows) == 0 {
		r.sendText(chatID, "⚠️ No bosses registered yet.")
		return
	}
	var sb strings.Builder
	sb.WriteString("⏳ Incoming spawns:\n")
	for _, row := range rows {
		switch {
		case row.Upcoming:
			fmt.Fprintf(&sb, "%s — %s (in %d min)\n", row.Boss.Name, row.Boss.NextSpawn, row.MinutesLeft)
		case !row.At.IsZero():
			fmt.Fprintf(&sb, "%s — spawned %s\n", row.Boss.Name, row.Boss.NextSpawn)
		default:
			fmt.Fprintf(&sb, "%s — not scheduled\n", row.Boss.Name)
		}
	}
	r.sendText(chatID, sb.String())
}

func (r *Router) handleFind(ctx context.Context, chatID int64, q string) {
	if q == "" {
		r.sendText(chatID, "Usage: /find <part of a name>")
		return
	}
	names, err := r.svc.Suggest(ctx, q)
	if err != nil {
		r.replyError(chatID, err, "")
		return
	}
	if len(names) == 0 {
		r.sendText(chatID, "No boss matches "+q)
		return
	}
	r.sendText(chatID, "🔎 "+strings.Join(names, ", "))
}

// replyError surfaces validation and not-found errors verbatim; anything
// else is logged and answered with a generic message.
func (r *Router) replyError(chatID int64, err error, usage string) {
	switch {
	case tracker.IsValidation(err):
		text := "❌ " + err.Error()
		if usage != "" {
			text += "\n" + usage
		}
		r.sendText(chatID, text)
	case errors.Is(err, domain.ErrNotFound):
		r.sendText(chatID, "❌ No boss by that name or number.")
	default:
		r.log.Error("command failed", zap.Error(err))
		r.sendText(chatID, "Something went wrong, please try again.")
	}
}
