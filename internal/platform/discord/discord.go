// Package discord listens to the Discord Gateway WebSocket and feeds guild
// messages into the forwarding engine.
package discord

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/platform"
)

// Listener owns one gateway session. Start and Stop are idempotent.
type Listener struct {
	token   string
	handler platform.Handler

	mu        sync.Mutex
	sess      *discordgo.Session
	botUserID string
}

// New creates a Listener. No connection is made until Start.
func New(token string, handler platform.Handler) *Listener {
	return &Listener{token: token, handler: handler}
}

// Start opens the gateway connection with guild-message intents.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sess != nil {
		return nil
	}

	sess, err := discordgo.New("Bot " + l.token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	sess.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	sess.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		l.mu.Lock()
		l.botUserID = r.User.ID
		l.mu.Unlock()
		log.Printf("Discord bot started as %s (ID: %s)", r.User.Username, r.User.ID)
	})

	sess.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		log.Printf("Bot was added to guild: %s (%s)", g.Name, g.ID)
	})

	sess.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		l.handleMessage(ctx, m)
	})

	if err := sess.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	l.sess = sess
	return nil
}

// Stop closes the gateway session. Events delivered after close are dropped.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sess == nil {
		return
	}
	if err := l.sess.Close(); err != nil {
		log.Println("⚠️ Error closing Discord session:", err)
	}
	l.sess = nil
	log.Println("Discord bot stopped")
}

func (l *Listener) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	l.mu.Lock()
	self := l.botUserID
	l.mu.Unlock()
	if m.Author.ID == self {
		return
	}

	l.handler.HandleMessage(ctx, platform.Message{
		Platform:  model.PlatformDiscord,
		ChannelID: m.ChannelID,
		Sender:    m.Author.Username,
		Text:      m.Content,
		Event:     platform.EventMessage,
	})
}
