// internal/model/campaign.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

type Campaign struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Principal string             `bson:"principal" json:"principal"`
	Name      string             `bson:"name" json:"name"`
	APIKey    string             `bson:"apiKey" json:"apiKey"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status    string             `bson:"status" json:"status"` // active, paused
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
