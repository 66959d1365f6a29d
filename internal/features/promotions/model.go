package promotions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeasonalPromotion boosts matching content while active. Targeting is
// optional: a promotion with no segments and no regions applies globally.
type SeasonalPromotion struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	StartsAt           time.Time            `bson:"startsAt" json:"startsAt"`
	EndsAt             time.Time            `bson:"endsAt" json:"endsAt"`
	Priority           int                  `bson:"priority" json:"priority"`
	PromotedContentIDs []primitive.ObjectID `bson:"promotedContentIds" json:"promotedContentIds"`
	BoostedTags        []string             `bson:"boostedTags" json:"boostedTags"`
	BoostedTypes       []string             `bson:"boostedTypes" json:"boostedTypes"`
	BoostFactor        float64              `bson:"boostFactor" json:"boostFactor"`
	TargetSegments     []string             `bson:"targetSegments,omitempty" json:"targetSegments,omitempty"`
	TargetRegions      []string             `bson:"targetRegions,omitempty" json:"targetRegions,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// AppliesTo reports whether the promotion targets the given user segments and
// region. Untargeted promotions apply to everyone.
func (p *SeasonalPromotion) AppliesTo(segments []string, region string) bool {
	if len(p.TargetSegments) == 0 && len(p.TargetRegions) == 0 {
		return true
	}

	for _, want := range p.TargetSegments {
		for _, have := range segments {
			if want == have {
				return true
			}
		}
	}
	for _, want := range p.TargetRegions {
		if want == region && region != "" {
			return true
		}
	}
	return false
}

// CreatePromotionRequest is the admin payload for creating a promotion
type CreatePromotionRequest struct {
	Name               string    `json:"name" binding:"required,min=1,max=100"`
	StartsAt           time.Time `json:"startsAt" binding:"required"`
	EndsAt             time.Time `json:"endsAt" binding:"required"`
	Priority           int       `json:"priority"`
	PromotedContentIDs []string  `json:"promotedContentIds"`
	BoostedTags        []string  `json:"boostedTags"`
	BoostedTypes       []string  `json:"boostedTypes"`
	BoostFactor        float64   `json:"boostFactor"`
	TargetSegments     []string  `json:"targetSegments"`
	TargetRegions      []string  `json:"targetRegions"`
}
