// internal/service/generation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openwave/chatcast-backend/internal/ai"
	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/queue"
	"github.com/openwave/chatcast-backend/internal/repository"
)

// GenerationService turns one GenerationJob into a batch of scheduled
// pending Content items.
type GenerationService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	ContentRepo  repository.ContentRepositoryInterface
	AI           ai.Generator
}

// Process handles one job. A missing campaign drops the job (nil, no retry);
// a per-post generation failure is logged and skipped so one bad completion
// never sinks the batch.
func (s *GenerationService) Process(ctx context.Context, job queue.GenerationJob) error {
	campaignID, err := primitive.ObjectIDFromHex(job.CampaignID)
	if err != nil {
		log.Println("⚠️ Invalid campaign id in generation job:", job.CampaignID)
		return nil
	}

	campaign, err := s.CampaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			log.Println("⚠️ Dropping generation job for deleted campaign:", job.CampaignID)
			return nil
		}
		return err // transient store error, let the queue retry
	}

	log.Printf("📩 Generating %d posts for campaign %q (job %s)", job.Count, campaign.Name, job.JobID)

	interval := job.Interval()
	created := 0
	for i := 0; i < job.Count; i++ {
		prompt := fmt.Sprintf(
			"Generate a unique, engaging social media post about: %s. Do not use hashtags. The post should be at least one sentence long. This is post %d of %d, make it different from the others.",
			job.Prompt, i+1, job.Count,
		)

		text, err := s.AI.Generate(ctx, prompt)
		if err != nil {
			log.Printf("⚠️ Failed to generate post %d/%d: %v", i+1, job.Count, err)
			continue
		}

		content := &model.Content{
			CampaignID:    campaignID,
			Content:       text,
			ScheduledTime: job.StartTime.Add(time.Duration(i) * interval),
			Status:        model.ContentStatusPending,
		}
		if err := s.ContentRepo.Create(ctx, content); err != nil {
			log.Printf("⚠️ Failed to store generated post %d/%d: %v", i+1, job.Count, err)
			continue
		}
		created++
	}

	log.Printf("✅ Generation job %s done: %d/%d posts scheduled", job.JobID, created, job.Count)
	return nil
}
