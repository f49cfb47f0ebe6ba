// Package forward matches inbound chat-platform messages against active
// routes and forwards them to their OpenChat destinations.
package forward

import (
	"context"
	"log"
	"time"

	"github.com/openwave/chatcast-backend/internal/openchat"
	"github.com/openwave/chatcast-backend/internal/platform"
	"github.com/openwave/chatcast-backend/internal/repository"
)

// Forwarder implements platform.Handler. Each event is processed to
// completion before the adapter delivers the next one; one route's failure
// never blocks the others.
type Forwarder struct {
	Routes     repository.RouteRepositoryInterface
	Dispatcher openchat.Dispatcher

	// Now is overridable for tests; defaults to time.Now UTC.
	Now func() time.Time
}

func (f *Forwarder) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now().UTC()
}

// HandleMessage forwards one inbound message to every matching active route.
func (f *Forwarder) HandleMessage(ctx context.Context, msg platform.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("⚠️ Recovered from panic while handling message:", r)
		}
	}()

	content := msg.Body()
	if content == "" {
		log.Println("Skipping message without text content")
		return
	}

	routes, err := f.Routes.FindActive(ctx, msg.Platform, msg.ChannelID)
	if err != nil {
		log.Println("⚠️ Failed to look up routes for channel", msg.ChannelID, ":", err)
		return
	}

	log.Printf("Found %d active routes for %s channel %s", len(routes), msg.Platform, msg.ChannelID)
	if len(routes) == 0 {
		return
	}

	for _, route := range routes {
		if !ShouldForward(content, route.Filters) {
			continue
		}

		if err := f.Dispatcher.Send(ctx, route.OpenChatAPIKey, content); err != nil {
			log.Printf("⚠️ Failed to forward message for route %s: %v", route.ID.Hex(), err)
			if recErr := f.Routes.RecordFailure(ctx, route.ID, err.Error()); recErr != nil {
				log.Printf("⚠️ Failed to record failure for route %s: %v", route.ID.Hex(), recErr)
			}
			continue
		}

		if recErr := f.Routes.RecordSuccess(ctx, route.ID, f.now()); recErr != nil {
			log.Printf("⚠️ Failed to record success for route %s: %v", route.ID.Hex(), recErr)
			continue
		}
		log.Printf("✅ Forwarded message for route %s", route.ID.Hex())
	}
}

var _ platform.Handler = (*Forwarder)(nil)
