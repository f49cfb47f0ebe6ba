// internal/controller/ai_controller.go
package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openwave/chatcast-backend/internal/ai"
	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/queue"
)

const (
	defaultBulkCount = 10
	maxBulkCount     = 50

	// GenerationTopic is the queue routing key for bulk generation jobs.
	GenerationTopic = "generation_jobs"
)

type AIController struct {
	Generator ai.Generator
	Queue     queue.Publisher
}

func (c *AIController) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}
	if body.Prompt == "" {
		writeError(w, appErrors.NewValidation("Prompt is required"))
		return
	}

	content, err := c.Generator.Generate(r.Context(), body.Prompt)
	if err != nil {
		log.Println("⚠️ Content generation failed:", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate content"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

// BulkGenerate enqueues a generation job; the worker generates and schedules
// the posts asynchronously.
func (c *AIController) BulkGenerate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID string     `json:"campaignId"`
		Prompt     string     `json:"prompt"`
		Count      int        `json:"count"`
		Frequency  string     `json:"frequency"`
		StartTime  *time.Time `json:"startTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}
	if body.Prompt == "" {
		writeError(w, appErrors.NewValidation("Prompt is required"))
		return
	}
	if _, err := primitive.ObjectIDFromHex(body.CampaignID); err != nil {
		writeError(w, appErrors.NewValidation("invalid campaignId format"))
		return
	}
	if body.Count <= 0 {
		body.Count = defaultBulkCount
	}
	if body.Count > maxBulkCount {
		writeError(w, appErrors.NewValidation("count must be 50 or fewer"))
		return
	}

	start := time.Now().UTC()
	if body.StartTime != nil {
		start = body.StartTime.UTC()
	}

	job := queue.GenerationJob{
		JobID:      uuid.NewString(),
		CampaignID: body.CampaignID,
		Prompt:     body.Prompt,
		Count:      body.Count,
		Frequency:  body.Frequency,
		StartTime:  start,
	}

	if err := c.Queue.Publish(GenerationTopic, job); err != nil {
		log.Println("⚠️ Failed to enqueue generation job:", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to queue generation job"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"jobId":  job.JobID,
		"queued": job.Count,
	})
}
