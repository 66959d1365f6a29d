package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile is the health profile driving content relevance. It is written
// by the profile flow and read-only to the recommendation engine.
type UserProfile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Constitution      string             `bson:"constitution" json:"constitution"` // TCM constitution tag
	HealthGoals       []string           `bson:"healthGoals" json:"healthGoals"`
	ChronicConditions []string           `bson:"chronicConditions" json:"chronicConditions"`
	PreferenceTags    []string           `bson:"preferenceTags" json:"preferenceTags"`
	Region            string             `bson:"region,omitempty" json:"region,omitempty"`
	Segments          []string           `bson:"segments,omitempty" json:"segments,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UpdateProfileRequest is the payload for updating the health profile
type UpdateProfileRequest struct {
	Constitution      *string   `json:"constitution" binding:"omitempty,max=50"`
	HealthGoals       *[]string `json:"healthGoals"`
	ChronicConditions *[]string `json:"chronicConditions"`
	PreferenceTags    *[]string `json:"preferenceTags"`
	Region            *string   `json:"region" binding:"omitempty,max=50"`
}
