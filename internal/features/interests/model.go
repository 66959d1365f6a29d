package interests

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserInterestScore tracks how often a user positively interacted with a tag.
// Updated by idempotent increments; exact consistency is not required.
type UserInterestScore struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Tag              string             `bson:"tag" json:"tag"`
	Count            int64              `bson:"count" json:"count"`
	LastInteractedAt time.Time          `bson:"lastInteractedAt" json:"lastInteractedAt"`
}
