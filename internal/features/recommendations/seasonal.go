package recommendations

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/promotions"
)

// SeasonalBooster applies active promotions to a ranked list, falling back to
// the TCM seasonal calendar when no promotion targets the user.
type SeasonalBooster struct {
	cfg *config.Engine
}

func NewSeasonalBooster(cfg *config.Engine) *SeasonalBooster {
	return &SeasonalBooster{cfg: cfg}
}

// Apply boosts the list in place with the promotions targeting the given user
// segments and region, then re-sorts. With no applicable promotions the list
// is instead softly reordered to surface in-season content, scores untouched.
func (s *SeasonalBooster) Apply(list []ScoredContent, promos []promotions.SeasonalPromotion, segments []string, region string, now time.Time) []ScoredContent {
	var applicable []promotions.SeasonalPromotion
	for _, p := range promos {
		if p.AppliesTo(segments, region) {
			applicable = append(applicable, p)
		}
	}

	if len(applicable) == 0 {
		return seasonalSuggestion(list, now)
	}

	// Promotions arrive priority-descending; earlier ones win provenance
	// unless a later one boosts harder.
	for _, promo := range applicable {
		s.applyPromotion(list, &promo)
	}

	sortByScore(list)
	return list
}

func (s *SeasonalBooster) applyPromotion(list []ScoredContent, promo *promotions.SeasonalPromotion) {
	boost := promo.BoostFactor
	if boost <= 0 {
		boost = s.cfg.DefaultPromotionBoost
	}

	promoted := make(map[primitive.ObjectID]bool, len(promo.PromotedContentIDs))
	for _, id := range promo.PromotedContentIDs {
		promoted[id] = true
	}

	boostedTypes := make(map[string]bool, len(promo.BoostedTypes))
	for _, t := range promo.BoostedTypes {
		boostedTypes[t] = true
	}

	for i := range list {
		item := &list[i]

		switch {
		case promoted[item.Content.ID]:
			item.Score *= boost
			attachProvenance(item, promo, boost)

		case matchedTagFraction(item.Content.Tags, promo.BoostedTags) > 0:
			fraction := matchedTagFraction(item.Content.Tags, promo.BoostedTags)
			factor := 1 + fraction*(boost-1)
			item.Score *= factor
			attachProvenance(item, promo, factor)

		case boostedTypes[item.Content.Type]:
			typeBoost := promo.BoostFactor
			if typeBoost <= 0 {
				typeBoost = s.cfg.DefaultTypeBoost
			}
			item.Score *= typeBoost
			attachProvenance(item, promo, typeBoost)
		}
	}
}

// attachProvenance records which promotion moved the score, keeping the
// strongest attribution when several promotions hit the same item.
func attachProvenance(item *ScoredContent, promo *promotions.SeasonalPromotion, boost float64) {
	if item.Promotion != nil && item.Promotion.Boost >= boost {
		return
	}
	item.Promotion = &PromotionBoost{
		PromotionID:   promo.ID,
		PromotionName: promo.Name,
		Boost:         boost,
	}
}

// matchedTagFraction returns the share of the promotion's boosted tags the
// item carries.
func matchedTagFraction(itemTags, boostedTags []string) float64 {
	if len(boostedTags) == 0 {
		return 0
	}
	matched := 0
	for _, want := range boostedTags {
		for _, have := range itemTags {
			if want == have {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(boostedTags))
}

// seasonalSuggestion stably moves in-season items ahead of the rest without
// changing any score.
func seasonalSuggestion(list []ScoredContent, now time.Time) []ScoredContent {
	season := CurrentSeason(now)
	sort.SliceStable(list, func(i, j int) bool {
		return matchesSeason(list[i].Content.Tags, season) && !matchesSeason(list[j].Content.Tags, season)
	})
	return list
}
