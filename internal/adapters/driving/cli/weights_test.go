package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

func TestWeightsCmd_Use(t *testing.T) {
	assert.Equal(t, "weights", weightsCmd.Use)
}

func TestWeightsCmd_ShowsDefaultsWithoutFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storeCleanup := setupTestStore(t)
	defer storeCleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"weights"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "title:        0.30")
	assert.Contains(t, buf.String(), "recency:      0.05")
}

func TestWeightsCmd_SavesValidWeights(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storeCleanup := setupTestStore(t)
	defer storeCleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"weights", "--title", "0.5", "--content", "0.5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Saved weights to")

	stored, err := settingsStore.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, stored.Title)
	assert.Equal(t, 0.5, stored.Content)
	// Unchanged flags keep their defaults.
	assert.Equal(t, domain.DefaultWeights().Tags, stored.Tags)
}

func TestWeightsCmd_RejectsOutOfRangeWeight(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storeCleanup := setupTestStore(t)
	defer storeCleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"weights", "--title", "1.5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeights)
}

func TestEffectiveWeights_PrefersStored(t *testing.T) {
	storeCleanup := setupTestStore(t)
	defer storeCleanup()

	custom := domain.RelevanceWeights{Title: 0.9, Content: 0.1}
	require.NoError(t, settingsStore.Save(custom))

	got := effectiveWeights()

	assert.Equal(t, 0.9, got.Title)
	assert.Equal(t, 0.1, got.Content)
}

func TestEffectiveWeights_FallsBackToDefaults(t *testing.T) {
	storeCleanup := setupTestStore(t)
	defer storeCleanup()

	got := effectiveWeights()

	assert.Equal(t, domain.DefaultWeights(), got)
}
