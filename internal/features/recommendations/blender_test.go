package recommendations

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/features/content"
)

func scoredItem(score float64, tags ...string) ScoredContent {
	return ScoredContent{
		Content: content.ContentItem{ID: primitive.NewObjectID(), Tags: tags, IsActive: true},
		Score:   score,
	}
}

func TestBlend_NoDuplicateContentIDs(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	shared := scoredItem(0.8, "睡眠")
	contentList := []ScoredContent{shared, scoredItem(0.6, "饮食")}
	collabList := []ScoredContent{{Content: shared.Content, Score: 0.5}, scoredItem(0.4, "运动")}

	blended := blender.Blend(contentList, collabList, 0.4, 10)

	seen := make(map[primitive.ObjectID]bool)
	for _, sc := range blended {
		require.False(t, seen[sc.Content.ID], "duplicate id %s", sc.Content.ID.Hex())
		seen[sc.Content.ID] = true
	}
	require.Len(t, blended, 3)
}

func TestBlend_CoOccurrenceBonus(t *testing.T) {
	cfg := config.DefaultEngine()
	blender := NewBlender(cfg)

	shared := scoredItem(1.0, "睡眠")
	collabShared := ScoredContent{Content: shared.Content, Score: 0.5}

	blended := blender.Blend([]ScoredContent{shared}, []ScoredContent{collabShared}, 0.4, 10)
	require.Len(t, blended, 1)

	// 0.4*1.0 + 0.6*0.5 = 0.7, then the both-lists bonus
	require.InDelta(t, 0.7*cfg.CoOccurrenceBonus, blended[0].Score, 1e-9)
}

func TestBlend_SingleListItemsKeepTheirScore(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	onlyContent := scoredItem(0.9, "睡眠")
	onlyCollab := scoredItem(0.3, "运动")

	blended := blender.Blend([]ScoredContent{onlyContent}, []ScoredContent{onlyCollab}, 0.4, 10)
	require.Len(t, blended, 2)
	require.Equal(t, 0.9, blended[0].Score)
	require.Equal(t, 0.3, blended[1].Score)
}

func TestBlend_TruncatesToLimit(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	var list []ScoredContent
	for i := 0; i < 20; i++ {
		list = append(list, scoredItem(float64(i), "睡眠"))
	}

	blended := blender.Blend(list, nil, 0.4, 5)
	require.Len(t, blended, 5)
	require.Equal(t, 19.0, blended[0].Score)
}

func TestDiversify_CapsItemsPerPrimaryTag(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	var list []ScoredContent
	for i := 0; i < 8; i++ {
		list = append(list, scoredItem(float64(10-i), "睡眠"))
	}
	list = append(list, scoredItem(1.0, "饮食"))

	out := blender.Diversify(list, 0.2, 10)

	perTag := make(map[string]int)
	for _, sc := range out {
		perTag[sc.Content.PrimaryTag()]++
	}
	require.Equal(t, 3, perTag["睡眠"])
	require.Equal(t, 1, perTag["饮食"])
}

func TestDiversify_RoundRobinAcrossTagGroups(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	sleep1, sleep2 := scoredItem(0.9, "睡眠"), scoredItem(0.8, "睡眠")
	diet1 := scoredItem(0.7, "饮食")

	out := blender.Diversify([]ScoredContent{sleep1, sleep2, diet1}, 0.2, 10)
	require.Len(t, out, 3)

	// One item per group per pass, group-internal order preserved.
	require.Equal(t, sleep1.Content.ID, out[0].Content.ID)
	require.Equal(t, diet1.Content.ID, out[1].Content.ID)
	require.Equal(t, sleep2.Content.ID, out[2].Content.ID)
}

func TestDiversify_SkippedWhenWeightNotPositive(t *testing.T) {
	blender := NewBlender(config.DefaultEngine())

	var list []ScoredContent
	for i := 0; i < 6; i++ {
		list = append(list, scoredItem(float64(6-i), "睡眠"))
	}

	out := blender.Diversify(list, 0, 10)
	require.Equal(t, list, out)
}
