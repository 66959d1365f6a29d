package recommendations

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
)

// Blender merges the content-based and collaborative rankings into one
// deduplicated list and then spreads it across primary tags.
type Blender struct {
	cfg *config.Engine
}

func NewBlender(cfg *config.Engine) *Blender {
	return &Blender{cfg: cfg}
}

// Blend combines two scored lists. Items present in both earn a co-occurrence
// bonus on top of the weighted mix; items in one list keep their own score.
// The result is sorted descending and truncated to limit.
func (b *Blender) Blend(contentBased, collaborative []ScoredContent, contentWeight float64, limit int) []ScoredContent {
	if contentWeight <= 0 || contentWeight >= 1 {
		contentWeight = b.cfg.DefaultContentWeight
	}

	collabByID := make(map[primitive.ObjectID]ScoredContent, len(collaborative))
	for _, sc := range collaborative {
		collabByID[sc.Content.ID] = sc
	}

	merged := make([]ScoredContent, 0, len(contentBased)+len(collaborative))
	seen := make(map[primitive.ObjectID]bool, len(contentBased))

	for _, sc := range contentBased {
		if seen[sc.Content.ID] {
			continue
		}
		seen[sc.Content.ID] = true

		if collab, ok := collabByID[sc.Content.ID]; ok {
			sc.Score = (contentWeight*sc.Score + (1-contentWeight)*collab.Score) * b.cfg.CoOccurrenceBonus
		}
		merged = append(merged, sc)
	}
	for _, sc := range collaborative {
		if seen[sc.Content.ID] {
			continue
		}
		seen[sc.Content.ID] = true
		merged = append(merged, sc)
	}

	sortByScore(merged)
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Diversify reorders the list so no primary tag dominates: each tag group is
// capped and groups are drained round-robin, keeping each group's internal
// order. A non-positive diversity weight skips the pass entirely.
func (b *Blender) Diversify(list []ScoredContent, diversityWeight float64, limit int) []ScoredContent {
	if diversityWeight <= 0 || len(list) <= 1 {
		return list
	}

	var order []string
	groups := make(map[string][]ScoredContent)
	for _, sc := range list {
		tag := sc.Content.PrimaryTag()
		if len(groups[tag]) >= b.cfg.MaxPerPrimaryTag {
			continue
		}
		if _, ok := groups[tag]; !ok {
			order = append(order, tag)
		}
		groups[tag] = append(groups[tag], sc)
	}

	if limit <= 0 {
		limit = len(list)
	}

	out := make([]ScoredContent, 0, limit)
	for len(out) < limit {
		drained := true
		for _, tag := range order {
			group := groups[tag]
			if len(group) == 0 {
				continue
			}
			out = append(out, group[0])
			groups[tag] = group[1:]
			drained = false
			if len(out) >= limit {
				break
			}
		}
		if drained {
			break
		}
	}
	return out
}
