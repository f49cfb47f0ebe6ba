// Package scheduler runs the periodic content dispatch loop: find due pending
// items, check the owning campaign, post to OpenChat, record the outcome.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/openchat"
	"github.com/openwave/chatcast-backend/internal/repository"
)

// Scheduler owns its timer and lifecycle. Start and Stop are idempotent; the
// cron chain skips a tick while the previous one is still running, so ticks
// never overlap. Stopping cancels the timer but does not interrupt an
// in-flight tick.
type Scheduler struct {
	Contents   repository.ContentRepositoryInterface
	Campaigns  repository.CampaignRepositoryInterface
	Dispatcher openchat.Dispatcher
	Interval   time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New creates a Scheduler. It does not start ticking until Start is called.
func New(contents repository.ContentRepositoryInterface, campaigns repository.CampaignRepositoryInterface, dispatcher openchat.Dispatcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		Contents:   contents,
		Campaigns:  campaigns,
		Dispatcher: dispatcher,
		Interval:   interval,
	}
}

// Start begins the dispatch loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.Interval), func() {
		s.RunOnce(context.Background(), time.Now().UTC())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule dispatch loop: %w", err)
	}

	c.Start()
	s.cron = c
	s.running = true
	log.Println("🚀 Content scheduler started")
	return nil
}

// Stop cancels the timer. Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.cron = nil
	s.running = false
	log.Println("Content scheduler stopped")
}

// Running reports the lifecycle state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce performs one tick at the given time. Items are processed
// sequentially; one item's failure is recorded on that item and never aborts
// the rest of the batch.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) {
	log.Println("Checking for content to post at:", now.Format(time.RFC3339))

	due, err := s.Contents.FindDue(ctx, now)
	if err != nil {
		log.Println("⚠️ Error checking for content to post:", err)
		return
	}

	for _, content := range due {
		s.processItem(ctx, content, now)
	}
}

func (s *Scheduler) processItem(ctx context.Context, content *model.Content, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Recovered from panic while posting content %s: %v", content.ID.Hex(), r)
		}
	}()

	campaign, err := s.Campaigns.GetByID(ctx, content.CampaignID)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			log.Printf("⚠️ Campaign not found for content %s", content.ID.Hex())
			if err := s.Contents.MarkOrphaned(ctx, content.ID, "Campaign not found"); err != nil {
				log.Printf("⚠️ Failed to record failure for content %s: %v", content.ID.Hex(), err)
			}
			return
		}
		// Transient store error: no dispatch was attempted, so leave the
		// item pending for the next tick.
		log.Printf("⚠️ Failed to load campaign for content %s: %v", content.ID.Hex(), err)
		return
	}

	if campaign.Status != model.CampaignStatusActive {
		// Leave the item pending so it posts once the campaign resumes.
		log.Printf("Skipping content %s - campaign %q is not active", content.ID.Hex(), campaign.Name)
		return
	}

	log.Printf("Processing content %s for campaign %q", content.ID.Hex(), campaign.Name)

	if err := s.Dispatcher.Send(ctx, campaign.APIKey, content.Content); err != nil {
		log.Printf("⚠️ Failed to post content %s: %v", content.ID.Hex(), err)
		s.markFailed(ctx, content, now, err.Error())
		return
	}

	if err := s.Contents.MarkPosted(ctx, content.ID, now, content.Attempts+1); err != nil {
		log.Printf("⚠️ Failed to record posted content %s: %v", content.ID.Hex(), err)
		return
	}
	log.Printf("✅ Posted content %s successfully", content.ID.Hex())
}

func (s *Scheduler) markFailed(ctx context.Context, content *model.Content, now time.Time, reason string) {
	if err := s.Contents.MarkFailed(ctx, content.ID, now, content.Attempts+1, reason); err != nil {
		log.Printf("⚠️ Failed to record failure for content %s: %v", content.ID.Hex(), err)
	}
}
