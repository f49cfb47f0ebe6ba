// Package platform defines the common inbound message shape produced by the
// chat-platform adapters and consumed by the forwarding engine.
package platform

import "context"

// Event kinds delivered by adapters.
const (
	EventMessage  = "message"
	EventBotAdded = "botAdded"
)

// Message is one inbound chat-platform event, normalized. Text is the primary
// payload; Caption is the media-caption fallback.
type Message struct {
	Platform     string
	ChannelID    string
	ChannelTitle string
	Sender       string
	Text         string
	Caption      string
	Event        string
}

// Body returns the text payload, preferring Text over Caption. Empty means
// the message carries no forwardable text.
func (m Message) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Handler consumes normalized messages. Adapters call it once per event, in
// arrival order per connection.
type Handler interface {
	HandleMessage(ctx context.Context, msg Message)
}
