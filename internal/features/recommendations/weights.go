package recommendations

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/behavior"
	"github.com/wellnest-app/wellness-api/internal/features/content"
)

// Learner converts a user's interaction history into a PersonalizedWeights
// vector. It is a pure computation over fetched snapshots: no I/O, no errors.
type Learner struct {
	cfg *config.Engine
}

func NewLearner(cfg *config.Engine) *Learner {
	return &Learner{cfg: cfg}
}

// Learn derives personalized weights from the user's most recent events and
// the content items they reference. Returns nil when the user has too little
// history for personalization; events whose content is missing from items are
// skipped rather than treated as errors.
func (l *Learner) Learn(events []behavior.InteractionEvent, items map[primitive.ObjectID]*content.ContentItem) *PersonalizedWeights {
	if len(events) < l.cfg.MinInteractions {
		return nil
	}
	if len(events) > l.cfg.MaxLearningEvents {
		events = events[:l.cfg.MaxLearningEvents]
	}

	typeTotals := make(map[string]float64)
	tagTotals := make(map[string]float64)
	seasonTotals := make(map[string]float64)
	posTags := make(map[string]float64)
	negTags := make(map[string]float64)
	slotCounts := make(map[string]int)
	distinctContent := make(map[primitive.ObjectID]bool)

	considered := 0
	for _, e := range events {
		item, ok := items[e.ContentID]
		if !ok || item == nil {
			continue
		}

		w := l.cfg.ActionWeight(e.Action)
		if w == 0 {
			continue
		}
		// Completing most of an item is a stronger signal for some types
		// (a finished quiz says more than a finished article).
		if e.CompletionRate > 0 {
			w += e.CompletionRate * l.cfg.TypeCompletionWeights[item.Type]
		}

		typeTotals[item.Type] += w
		for _, tag := range item.Tags {
			tagTotals[tag] += w
			if w > 0 {
				posTags[tag] += w
			} else {
				negTags[tag] += -w
			}
			if season := seasonOf(tag); season != "" {
				seasonTotals[string(season)] += w
			}
		}

		slotCounts[timeSlot(e.CreatedAt)]++
		distinctContent[e.ContentID] = true
		considered++
	}

	if considered == 0 {
		return nil
	}

	normalize(typeTotals)
	normalize(tagTotals)
	normalize(seasonTotals)
	normalize(posTags)
	normalize(negTags)

	weights := DefaultWeights(l.cfg.DefaultContentWeight)
	weights.TypeWeights = typeTotals
	weights.TagPreferences = tagTotals
	weights.SeasonalPrefs = seasonTotals
	weights.EventsConsidered = considered

	// Strong seasonal swings mean the season signal is worth trusting more.
	weights.SeasonalWeight = 0.2 + math.Min(0.3, 3*variance(seasonTotals))

	// A wide gap between the best- and worst-liked tag means tags carry
	// real preference information.
	weights.TagImportance = 0.2 + math.Min(0.3, spread(tagTotals))

	// Users who sample broadly get diverse lists; repeaters get focused ones.
	ratio := float64(len(distinctContent)) / float64(considered)
	switch {
	case ratio > l.cfg.DiversityHigh:
		weights.DiversityWeight = 0.4
	case ratio < l.cfg.DiversityLow:
		weights.DiversityWeight = 0.1
	}

	weights.AvoidTags = tagsOverShare(negTags, l.cfg.AvoidTagShare)
	weights.BoostTags = tagsOverShare(posTags, l.cfg.BoostTagShare)
	weights.PreferredSlot = dominantSlot(slotCounts, considered, l.cfg.TimeSlotShare)

	return weights
}

// normalize scales the map in place so the absolute values sum to 1.0.
// An empty or all-zero map is left untouched.
func normalize(m map[string]float64) {
	var sum float64
	for _, v := range m {
		sum += math.Abs(v)
	}
	if sum == 0 {
		return
	}
	for k, v := range m {
		m[k] = v / sum
	}
}

func variance(m map[string]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var mean float64
	for _, v := range m {
		mean += v
	}
	mean /= float64(len(m))

	var sq float64
	for _, v := range m {
		sq += (v - mean) * (v - mean)
	}
	return sq / float64(len(m))
}

func spread(m map[string]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range m {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return max - min
}

// tagsOverShare returns the tags whose normalized share exceeds the threshold
func tagsOverShare(normalized map[string]float64, threshold float64) map[string]bool {
	var out map[string]bool
	for tag, share := range normalized {
		if share > threshold {
			if out == nil {
				out = make(map[string]bool)
			}
			out[tag] = true
		}
	}
	return out
}

// dominantSlot returns the time bucket holding more than the threshold share
// of events, or "" when no bucket dominates.
func dominantSlot(counts map[string]int, total int, threshold float64) string {
	best, bestCount := "", 0
	for slot, count := range counts {
		if count > bestCount {
			best, bestCount = slot, count
		}
	}
	if float64(bestCount)/float64(total) > threshold {
		return best
	}
	return ""
}
