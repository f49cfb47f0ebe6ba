// internal/model/instance.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatInstance is one AI chat session container.
type ChatInstance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	DocumentName *string            `bson:"documentName" json:"documentName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
