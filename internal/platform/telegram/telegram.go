// Package telegram listens to a Telegram bot via long polling and feeds
// group, supergroup and channel messages into the forwarding engine.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/platform"
)

// Listener owns one bot connection. Updates are handled one at a time, in
// arrival order. Start and Stop are idempotent.
type Listener struct {
	token   string
	handler platform.Handler

	mu     sync.Mutex
	bot    *tgbotapi.BotAPI
	cancel context.CancelFunc
}

// New creates a Listener. No network calls happen until Start.
func New(token string, handler platform.Handler) *Listener {
	return &Listener{token: token, handler: handler}
}

// Start connects the bot and begins polling for updates.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.bot != nil {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(l.token)
	if err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}
	log.Printf("Telegram bot started as @%s (ID: %d)", bot.Self.UserName, bot.Self.ID)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	l.bot = bot
	l.cancel = cancel

	go l.poll(ctx, updates)
	return nil
}

// Stop closes the polling connection. In-flight updates are dropped, not
// drained.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.bot == nil {
		return
	}
	l.bot.StopReceivingUpdates()
	l.cancel()
	l.bot = nil
	l.cancel = nil
	log.Println("Telegram bot stopped")
}

func (l *Listener) poll(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			l.handleUpdate(ctx, update)
		}
	}
}

func (l *Listener) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return
	}

	if len(msg.NewChatMembers) > 0 {
		l.handleNewMembers(msg)
		return
	}

	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() && !msg.Chat.IsChannel() {
		return
	}

	sender := ""
	if msg.From != nil {
		sender = msg.From.UserName
	}

	log.Printf("New message in %q (%d)", msg.Chat.Title, msg.Chat.ID)
	l.handler.HandleMessage(ctx, platform.Message{
		Platform:     model.PlatformTelegram,
		ChannelID:    strconv.FormatInt(msg.Chat.ID, 10),
		ChannelTitle: msg.Chat.Title,
		Sender:       sender,
		Text:         msg.Text,
		Caption:      msg.Caption,
		Event:        platform.EventMessage,
	})
}

// handleNewMembers sends a one-time welcome reply when the bot itself joins a
// group. Nothing is persisted; failures are logged and swallowed.
func (l *Listener) handleNewMembers(msg *tgbotapi.Message) {
	l.mu.Lock()
	bot := l.bot
	l.mu.Unlock()
	if bot == nil {
		return
	}

	for _, member := range msg.NewChatMembers {
		if member.ID != bot.Self.ID {
			continue
		}
		log.Printf("Bot was added to group: %s (%d)", msg.Chat.Title, msg.Chat.ID)
		welcome := fmt.Sprintf(
			"Hello! I've been added to %s.\nGroup ID: %d\n\nPlease make me an admin so I can monitor messages.",
			msg.Chat.Title, msg.Chat.ID,
		)
		if _, err := bot.Send(tgbotapi.NewMessage(msg.Chat.ID, welcome)); err != nil {
			log.Println("⚠️ Error sending welcome message:", err)
		}
		return
	}
}
