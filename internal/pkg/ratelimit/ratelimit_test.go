package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("u1"))
	require.True(t, rl.Allow("u1"))
	require.True(t, rl.Allow("u1"))
	require.False(t, rl.Allow("u1"))

	// Other keys are independent
	require.True(t, rl.Allow("u2"))
}

func TestWindowExpiry(t *testing.T) {
	rl := New(1, 20*time.Millisecond)

	require.True(t, rl.Allow("u1"))
	require.False(t, rl.Allow("u1"))

	time.Sleep(30 * time.Millisecond)
	require.True(t, rl.Allow("u1"))
}

func TestReset(t *testing.T) {
	rl := New(1, time.Minute)

	require.True(t, rl.Allow("u1"))
	require.False(t, rl.Allow("u1"))

	rl.Reset("u1")
	require.True(t, rl.Allow("u1"))
}
