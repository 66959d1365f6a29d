package abtest

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant names an algorithm arm within a test
type Variant struct {
	Name      string `bson:"name" json:"name"`
	Algorithm string `bson:"algorithm" json:"algorithm"` // content_based / collaborative / hybrid
}

// ABTest deterministically splits users across algorithm variants for the
// duration of its date range.
type ABTest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Variants       []Variant          `bson:"variants" json:"variants"`
	StartsAt       time.Time          `bson:"startsAt" json:"startsAt"`
	EndsAt         time.Time          `bson:"endsAt" json:"endsAt"`
	TrafficPercent int                `bson:"trafficPercent" json:"trafficPercent"` // 0-100 of users included
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsActive reports whether the test covers the given time
func (t *ABTest) IsActive(now time.Time) bool {
	return !now.Before(t.StartsAt) && !now.After(t.EndsAt)
}

// CreateTestRequest is the admin payload for creating a test
type CreateTestRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=100"`
	Variants       []Variant `json:"variants" binding:"required,min=1"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	EndsAt         time.Time `json:"endsAt" binding:"required"`
	TrafficPercent int       `json:"trafficPercent" binding:"min=0,max=100"`
}
