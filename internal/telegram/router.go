package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Takaroz/botboss/internal/tracker"
)

// Router wires Telegram updates to the tracker operations.
type Router struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
	svc *tracker.Service
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, svc *tracker.Service) *Router {
	return &Router{bot: bot, log: log, svc: svc}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		r.sendText(chatID, helpText)
	case strings.HasPrefix(text, "/addboss"):
		r.handleAdd(ctx, chatID, argOf(text, "/addboss"))
	case strings.HasPrefix(text, "/listboss"):
		r.handleList(ctx, chatID)
	case strings.HasPrefix(text, "/delboss"):
		r.handleDelete(ctx, chatID, argOf(text, "/delboss"))
	case strings.HasPrefix(text, "/editboss"):
		r.handleEdit(ctx, chatID, argOf(text, "/editboss"))
	case strings.HasPrefix(text, "/killnow"):
		r.handleKillNow(ctx, chatID, argOf(text, "/killnow"))
	case strings.HasPrefix(text, "/killat"):
		r.handleKillAt(ctx, chatID, argOf(text, "/killat"))
	case strings.HasPrefix(text, "/incoming"):
		r.handleIncoming(ctx, chatID)
	case strings.HasPrefix(text, "/find"):
		r.handleFind(ctx, chatID, argOf(text, "/find"))
	default:
		// Not a known command — stay quiet in group chats.
	}
}

// argOf strips the command (and an optional @botname suffix) from the text.
func argOf(text, cmd string) string {
	rest := strings.TrimPrefix(text, cmd)
	if strings.HasPrefix(rest, "@") {
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			rest = rest[i:]
		} else {
			rest = ""
		}
	}
	return strings.TrimSpace(rest)
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scanner.Alerter.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}
