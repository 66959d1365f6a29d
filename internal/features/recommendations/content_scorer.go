package recommendations

import (
	"math"
	"sort"
	"time"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/content"
	"github.com/wellnest-app/wellness-api/internal/features/profile"
)

// ContentScorer ranks candidate items by tag, season, recency, and health
// profile affinity. Scoring is a pure function over the fetched snapshots.
type ContentScorer struct {
	cfg *config.Engine
}

func NewContentScorer(cfg *config.Engine) *ContentScorer {
	return &ContentScorer{cfg: cfg}
}

// Score ranks the candidates and returns the top limit entries. The candidate
// pool is expected to be oversampled; the trim happens here after scoring.
func (s *ContentScorer) Score(
	candidates []content.ContentItem,
	prof *profile.UserProfile,
	interestTags []string,
	weights *PersonalizedWeights,
	now time.Time,
	limit int,
) []ScoredContent {
	if weights == nil {
		weights = DefaultWeights(s.cfg.DefaultContentWeight)
	}
	season := CurrentSeason(now)

	scored := make([]ScoredContent, 0, len(candidates))
	for _, item := range candidates {
		score := weights.SeasonalWeight*seasonalScore(item.Tags, season) +
			weights.RecencyWeight*s.recencyScore(item.PublishedAt, now) +
			weights.HealthRelevance*healthScore(item, prof) +
			weights.TagImportance*interestScore(item, interestTags)

		// Boost-tag and time-slot matches are flat bonuses on top of the
		// weighted sum, not another weighted term.
		if hasAnyTag(item.Tags, weights.BoostTags) {
			score += 0.2
		}
		if weights.PreferredSlot != "" && hasSlot(item.TimeSlots, weights.PreferredSlot) {
			score += 0.2
		}
		if hasAnyTag(item.Tags, weights.AvoidTags) {
			score -= 0.2
		}

		scored = append(scored, ScoredContent{Content: item, Score: score})
	}

	sortByScore(scored)
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// seasonalScore is 1.0 for in-season content, 0.2 for opposite-season
// content, 0.6 for anything non-seasonal.
func seasonalScore(tags []string, season Season) float64 {
	if matchesSeason(tags, season) {
		return 1.0
	}
	if opposite, ok := oppositeSeason[season]; ok && matchesSeason(tags, opposite) {
		return 0.2
	}
	return 0.6
}

// recencyScore decays exponentially with content age
func (s *ContentScorer) recencyScore(publishedAt, now time.Time) float64 {
	ageDays := now.Sub(publishedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays / s.cfg.RecencyHalfLifeDays)
}

// healthScore measures how much of the user's health profile (constitution,
// conditions, goals) the item's tags cover. No profile or no match floors at
// 0.4; any match scales into [0.5, 1.0].
func healthScore(item content.ContentItem, prof *profile.UserProfile) float64 {
	if prof == nil {
		return 0.4
	}

	var wanted []string
	if prof.Constitution != "" {
		wanted = append(wanted, prof.Constitution)
	}
	wanted = append(wanted, prof.ChronicConditions...)
	wanted = append(wanted, prof.HealthGoals...)
	if len(wanted) == 0 {
		return 0.4
	}

	matched := 0
	for _, tag := range wanted {
		if item.HasTag(tag) {
			matched++
		}
	}
	if matched == 0 {
		return 0.4
	}
	return 0.5 + 0.5*float64(matched)/float64(len(wanted))
}

// interestScore measures overlap with the user's top interest tags. No
// interests or no overlap floors at 0.3; any overlap scales into [0.5, 1.0].
func interestScore(item content.ContentItem, interestTags []string) float64 {
	if len(interestTags) == 0 {
		return 0.3
	}
	matched := 0
	for _, tag := range interestTags {
		if item.HasTag(tag) {
			matched++
		}
	}
	if matched == 0 {
		return 0.3
	}
	return 0.5 + 0.5*float64(matched)/float64(len(interestTags))
}

func hasAnyTag(tags []string, set map[string]bool) bool {
	if len(set) == 0 {
		return false
	}
	for _, tag := range tags {
		if set[tag] {
			return true
		}
	}
	return false
}

func hasSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// sortByScore orders entries by score descending, breaking ties by publish
// date so ordering stays deterministic.
func sortByScore(list []ScoredContent) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Content.PublishedAt.After(list[j].Content.PublishedAt)
	})
}
