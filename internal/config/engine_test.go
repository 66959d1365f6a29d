package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEngine_EmptyPathReturnsDefaults(t *testing.T) {
	engine, err := LoadEngine("")
	require.NoError(t, err)
	require.Equal(t, DefaultEngine(), engine)
}

func TestLoadEngine_OverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte("minInteractions: 5\nactionWeights:\n  view: 0.9\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	engine, err := LoadEngine(path)
	require.NoError(t, err)

	require.Equal(t, 5, engine.MinInteractions)
	require.Equal(t, 0.9, engine.ActionWeight("view"))
	// Untouched fields keep their defaults.
	require.Equal(t, DefaultEngine().MaxNeighbors, engine.MaxNeighbors)
}

func TestLoadEngine_MissingFile(t *testing.T) {
	_, err := LoadEngine("/nonexistent/engine.yaml")
	require.Error(t, err)
}

func TestActionWeight_UnknownActionIsZero(t *testing.T) {
	engine := DefaultEngine()
	require.Equal(t, 0.0, engine.ActionWeight("teleport"))
	require.Negative(t, engine.ActionWeight("dislike"))
}
