package behavior

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionClassification(t *testing.T) {
	for _, action := range ValidActions {
		require.True(t, IsValidAction(action))
	}
	require.False(t, IsValidAction("teleport"))
	require.False(t, IsValidAction(""))

	require.True(t, IsPositive(ActionView))
	require.True(t, IsPositive(ActionShare))
	require.False(t, IsPositive(ActionDislike))
	require.False(t, IsPositive(""))

	require.True(t, IsStrongPositive(ActionLike))
	require.True(t, IsStrongPositive(ActionSave))
	require.True(t, IsStrongPositive(ActionShare))
	require.False(t, IsStrongPositive(ActionView))
	require.False(t, IsStrongPositive(ActionComplete))
}
