package recommendations

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/features/content"
)

// Algorithms the orchestrator can select between
const (
	AlgorithmContentBased  = "content_based"
	AlgorithmCollaborative = "collaborative"
	AlgorithmHybrid        = "hybrid"
)

// Time-of-day buckets for interaction timestamps
const (
	SlotMorning   = "morning"   // 05:00-11:00
	SlotAfternoon = "afternoon" // 11:00-17:00
	SlotEvening   = "evening"   // 17:00-22:00
	SlotNight     = "night"     // 22:00-05:00
)

// PromotionBoost records which promotion adjusted a score and by how much
type PromotionBoost struct {
	PromotionID   primitive.ObjectID `json:"promotionId"`
	PromotionName string             `json:"promotionName"`
	Boost         float64            `json:"boost"`
}

// ScoredContent is one entry of a returned ranking: the content item, its
// relevance score, and provenance for any promotion boost applied to it.
type ScoredContent struct {
	Content   content.ContentItem `json:"content"`
	Score     float64             `json:"score"`
	Promotion *PromotionBoost     `json:"promotion,omitempty"`
}

// RecommendOptions narrows a recommendation request
type RecommendOptions struct {
	ContentType   string
	Limit         int
	IncludeViewed bool
	Tags          []string
	ABTestID      string
}

// PersonalizedWeights is the per-user weight vector the learner derives from
// interaction history. It is ephemeral: recomputed on demand, never stored as
// a document of record.
type PersonalizedWeights struct {
	TypeWeights      map[string]float64 `json:"typeWeights"`
	TagPreferences   map[string]float64 `json:"tagPreferences"`
	SeasonalPrefs    map[string]float64 `json:"seasonalPrefs"`
	ContentWeight    float64            `json:"contentWeight"` // content vs collaborative mix
	SeasonalWeight   float64            `json:"seasonalWeight"`
	RecencyWeight    float64            `json:"recencyWeight"`
	DiversityWeight  float64            `json:"diversityWeight"`
	TagImportance    float64            `json:"tagImportance"`
	HealthRelevance  float64            `json:"healthRelevance"`
	PreferredSlot    string             `json:"preferredSlot,omitempty"`
	AvoidTags        map[string]bool    `json:"avoidTags,omitempty"`
	BoostTags        map[string]bool    `json:"boostTags,omitempty"`
	EventsConsidered int                `json:"eventsConsidered"`
}

// DefaultWeights returns the fixed weight vector used when a user has too
// little history for personalization.
func DefaultWeights(contentWeight float64) *PersonalizedWeights {
	return &PersonalizedWeights{
		ContentWeight:   contentWeight,
		SeasonalWeight:  0.2,
		RecencyWeight:   0.2,
		DiversityWeight: 0.2,
		TagImportance:   0.2,
		HealthRelevance: 0.2,
	}
}

// RecommendationEvent is the append-only log of what the engine returned.
// It feeds the orchestrator's historical algorithm selection.
type RecommendationEvent struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	Algorithm  string               `bson:"algorithm" json:"algorithm"`
	ContentIDs []primitive.ObjectID `bson:"contentIds" json:"contentIds"`
	ABTestID   string               `bson:"abTestId,omitempty" json:"abTestId,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}

// TrackInteractionRequest is the payload for recording an interaction
type TrackInteractionRequest struct {
	ContentID      string  `json:"contentId" binding:"required"`
	Action         string  `json:"action" binding:"required"`
	DurationSec    int     `json:"durationSec" binding:"omitempty,min=0"`
	CompletionRate float64 `json:"completionRate" binding:"omitempty,min=0,max=1"`
}

// timeSlot maps an event timestamp to its bucket
func timeSlot(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return SlotMorning
	case h >= 11 && h < 17:
		return SlotAfternoon
	case h >= 17 && h < 22:
		return SlotEvening
	default:
		return SlotNight
	}
}
