package telegram

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandevgo/cinebot/internal/config"
	"github.com/sandevgo/cinebot/internal/service/command"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot    *tele.Bot
	cfg    *config.TelegramConfig
	router *command.Router
	turns  *command.TurnRunner
	sender *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	router *command.Router,
	turns *command.TurnRunner,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cfg:    cfg,
		router: router,
		turns:  turns,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if chat := c.Chat(); chat == nil || !bot.allowed(chat.ID) {
				return nil // Ignore chats outside the allow list
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(chatID int64) bool {
	return len(b.cfg.AllowedChats) == 0 || slices.Contains(b.cfg.AllowedChats, chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := SessionID(c.Chat().ID)
	ctx = log.WithSessionID(ctx, sessionID)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	reply, err := b.reply(ctx, sessionID, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("turn failed")
		return c.Send("Sorry, something went wrong. Please try again later.")
	}
	if strings.TrimSpace(reply) == "" {
		return nil
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// reply runs slash commands through the router; any other text is taken
// as a movie title.
func (b *Bot) reply(ctx context.Context, sessionID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if out, ok := b.router.Execute(ctx, sessionID, text); ok {
		return out, nil
	}
	return b.turns.Run(ctx, sessionID, fulfillment.HandlerSynopsis, command.TitleParams(strings.Fields(text)))
}

func SessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}
