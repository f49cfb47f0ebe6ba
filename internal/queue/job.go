package queue

import (
	"time"
)

// GenerationJob asks the worker to generate and schedule a batch of posts
// for one campaign.
type GenerationJob struct {
	JobID      string    `json:"job_id"`
	CampaignID string    `json:"campaign_id"`
	Prompt     string    `json:"prompt"`
	Count      int       `json:"count"`
	Frequency  string    `json:"frequency"` // hourly, daily, weekly
	StartTime  time.Time `json:"start_time"`
}

// Interval maps the frequency to the spacing between scheduled posts.
// Unknown values fall back to daily.
func (j GenerationJob) Interval() time.Duration {
	switch j.Frequency {
	case "hourly":
		return time.Hour
	case "weekly":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
