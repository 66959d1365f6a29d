package recommendations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/content"
	"github.com/wellnest-app/wellness-api/internal/features/profile"
)

var springDay = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

func TestCurrentSeason_MonthMapping(t *testing.T) {
	cases := map[time.Month]Season{
		time.January:   SeasonWinter,
		time.February:  SeasonWinter,
		time.March:     SeasonSpring,
		time.May:       SeasonSpring,
		time.June:      SeasonSummer,
		time.July:      SeasonSummer,
		time.August:    SeasonLateSummer,
		time.September: SeasonAutumn,
		time.November:  SeasonAutumn,
		time.December:  SeasonWinter,
	}
	for month, want := range cases {
		at := time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC)
		require.Equal(t, want, CurrentSeason(at), "month %s", month)
	}
}

func TestSeasonalScore_SpringAgainstAutumn(t *testing.T) {
	season := CurrentSeason(springDay)
	require.Equal(t, SeasonSpring, season)

	require.Equal(t, 1.0, seasonalScore([]string{"春季", "睡眠"}, season))
	require.Equal(t, 0.2, seasonalScore([]string{"秋季"}, season))
	require.Equal(t, 0.6, seasonalScore([]string{"睡眠"}, season))
}

func TestSeasonalScore_LateSummerHasNoOpposite(t *testing.T) {
	august := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	season := CurrentSeason(august)

	require.Equal(t, 1.0, seasonalScore([]string{"长夏"}, season))
	// Nothing is "opposite" to late summer; other seasons score neutral.
	require.Equal(t, 0.6, seasonalScore([]string{"春季"}, season))
}

func TestContentScorer_SeasonDrivesRanking(t *testing.T) {
	scorer := NewContentScorer(config.DefaultEngine())

	inSeason := content.ContentItem{
		ID: primitive.NewObjectID(), Type: content.TypeArticle,
		Tags: []string{"春季"}, PublishedAt: springDay.AddDate(0, 0, -1), IsActive: true,
	}
	offSeason := content.ContentItem{
		ID: primitive.NewObjectID(), Type: content.TypeArticle,
		Tags: []string{"秋季"}, PublishedAt: springDay.AddDate(0, 0, -1), IsActive: true,
	}

	ranked := scorer.Score([]content.ContentItem{offSeason, inSeason}, nil, nil, nil, springDay, 10)
	require.Len(t, ranked, 2)
	require.Equal(t, inSeason.ID, ranked[0].Content.ID)
	require.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestContentScorer_RecencyDecay(t *testing.T) {
	scorer := NewContentScorer(config.DefaultEngine())

	require.InDelta(t, 1.0, scorer.recencyScore(springDay, springDay), 1e-9)
	require.InDelta(t, 1.0, scorer.recencyScore(springDay.Add(time.Hour), springDay), 1e-9) // future clamps to now

	month := scorer.recencyScore(springDay.AddDate(0, 0, -30), springDay)
	year := scorer.recencyScore(springDay.AddDate(-1, 0, 0), springDay)
	require.Greater(t, month, year)
	require.InDelta(t, 0.3679, month, 1e-4) // e^-1 at the half-life constant
}

func TestContentScorer_HealthProfileMatch(t *testing.T) {
	prof := &profile.UserProfile{
		Constitution: "阳虚",
		HealthGoals:  []string{"改善睡眠"},
	}

	full := content.ContentItem{Tags: []string{"阳虚", "改善睡眠"}}
	partial := content.ContentItem{Tags: []string{"改善睡眠"}}
	none := content.ContentItem{Tags: []string{"饮食"}}

	require.Equal(t, 1.0, healthScore(full, prof))
	require.Equal(t, 0.75, healthScore(partial, prof))
	require.Equal(t, 0.4, healthScore(none, prof))
	require.Equal(t, 0.4, healthScore(full, nil))
}

func TestContentScorer_InterestTagMatch(t *testing.T) {
	item := content.ContentItem{Tags: []string{"冥想", "呼吸"}}

	require.Equal(t, 1.0, interestScore(item, []string{"冥想", "呼吸"}))
	require.Equal(t, 0.75, interestScore(item, []string{"冥想", "跑步"}))
	require.Equal(t, 0.3, interestScore(item, []string{"跑步"}))
	require.Equal(t, 0.3, interestScore(item, nil))
}

func TestContentScorer_BonusesAreAdditive(t *testing.T) {
	scorer := NewContentScorer(config.DefaultEngine())

	item := content.ContentItem{
		ID: primitive.NewObjectID(), Type: content.TypeArticle,
		Tags: []string{"冥想"}, TimeSlots: []string{SlotEvening},
		PublishedAt: springDay, IsActive: true,
	}

	plain := scorer.Score([]content.ContentItem{item}, nil, nil, nil, springDay, 1)[0].Score

	boosted := DefaultWeights(0.4)
	boosted.BoostTags = map[string]bool{"冥想": true}
	boosted.PreferredSlot = SlotEvening
	withBonuses := scorer.Score([]content.ContentItem{item}, nil, nil, boosted, springDay, 1)[0].Score

	require.InDelta(t, plain+0.4, withBonuses, 1e-9)

	avoided := DefaultWeights(0.4)
	avoided.AvoidTags = map[string]bool{"冥想": true}
	withPenalty := scorer.Score([]content.ContentItem{item}, nil, nil, avoided, springDay, 1)[0].Score
	require.InDelta(t, plain-0.2, withPenalty, 1e-9)
}

func TestContentScorer_TrimsOversampledPool(t *testing.T) {
	scorer := NewContentScorer(config.DefaultEngine())

	items := make([]content.ContentItem, 30)
	for i := range items {
		items[i] = content.ContentItem{
			ID: primitive.NewObjectID(), Type: content.TypeArticle,
			Tags: []string{"睡眠"}, PublishedAt: springDay.AddDate(0, 0, -i), IsActive: true,
		}
	}

	ranked := scorer.Score(items, nil, nil, nil, springDay, 10)
	require.Len(t, ranked, 10)

	// Identical tags leave recency as the deciding signal.
	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}
