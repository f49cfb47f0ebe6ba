// internal/model/content.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContentStatusPending = "pending"
	ContentStatusPosted  = "posted"
	ContentStatusFailed  = "failed"
)

// Content is one scheduled post. Status only ever moves pending->posted or
// pending/failed->failed; posted is terminal.
type Content struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampaignID    primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Content       string             `bson:"content" json:"content"`
	ScheduledTime time.Time          `bson:"scheduledTime" json:"scheduledTime"`
	Status        string             `bson:"status" json:"status"` // pending, posted, failed
	Attempts      int                `bson:"attempts" json:"attempts"`
	LastAttempt   *time.Time         `bson:"lastAttempt,omitempty" json:"lastAttempt,omitempty"`
	LastError     string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
