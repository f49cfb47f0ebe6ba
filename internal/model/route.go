// internal/model/route.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RouteStatusActive = "active"
	RouteStatusPaused = "paused"

	PlatformTelegram = "telegram"
	PlatformDiscord  = "discord"
	PlatformTwitter  = "twitter"
)

// RouteFilters decides which inbound messages a route forwards.
type RouteFilters struct {
	IncludeText   bool     `bson:"includeText" json:"includeText"`
	IncludeImages bool     `bson:"includeImages" json:"includeImages"`
	IncludeLinks  bool     `bson:"includeLinks" json:"includeLinks"`
	Keywords      []string `bson:"keywords" json:"keywords"`
}

// TwitterConfig carries the twitter-only route fields.
type TwitterConfig struct {
	Username        string `bson:"username" json:"username"`
	IncludeRetweets bool   `bson:"includeRetweets" json:"includeRetweets"`
	IncludeReplies  bool   `bson:"includeReplies" json:"includeReplies"`
}

// Route forwards messages from one platform channel to one OpenChat
// destination. errorCount increments by one per failed forward and resets to
// zero on the next success; lastSync only advances on success.
type Route struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Principal      string             `bson:"principal" json:"principal"`
	Name           string             `bson:"name" json:"name"`
	Platform       string             `bson:"platform" json:"platform"` // telegram, discord, twitter
	SourceID       string             `bson:"sourceId" json:"sourceId"`
	OpenChatAPIKey string             `bson:"openchatApiKey" json:"openchatApiKey"`
	Status         string             `bson:"status" json:"status"` // active, paused
	Filters        RouteFilters       `bson:"filters" json:"filters"`
	Twitter        *TwitterConfig     `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LastSync       *time.Time         `bson:"lastSync,omitempty" json:"lastSync,omitempty"`
	ErrorCount     int                `bson:"errorCount" json:"errorCount"`
	LastError      string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
