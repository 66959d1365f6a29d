package promotions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppliesTo(t *testing.T) {
	global := &SeasonalPromotion{}
	require.True(t, global.AppliesTo(nil, ""))
	require.True(t, global.AppliesTo([]string{"premium"}, "北京"))

	segmented := &SeasonalPromotion{TargetSegments: []string{"premium"}}
	require.True(t, segmented.AppliesTo([]string{"premium", "beta"}, ""))
	require.False(t, segmented.AppliesTo([]string{"free"}, ""))
	require.False(t, segmented.AppliesTo(nil, ""))

	regional := &SeasonalPromotion{TargetRegions: []string{"广东"}}
	require.True(t, regional.AppliesTo(nil, "广东"))
	require.False(t, regional.AppliesTo(nil, "北京"))
	require.False(t, regional.AppliesTo(nil, ""))

	both := &SeasonalPromotion{TargetSegments: []string{"premium"}, TargetRegions: []string{"广东"}}
	require.True(t, both.AppliesTo([]string{"premium"}, "北京"))
	require.True(t, both.AppliesTo(nil, "广东"))
	require.False(t, both.AppliesTo([]string{"free"}, "北京"))
}
