package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindow(t *testing.T) {
	createdAt := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	window, err := ComputeWindow(createdAt, DefaultLookback)
	require.NoError(t, err)

	assert.Equal(t, createdAt, window.Until)
	assert.Equal(t, createdAt.Add(-24*time.Hour), window.Since)
	assert.True(t, window.Since.Before(window.Until))
}

func TestComputeWindowLookbackScalesLinearly(t *testing.T) {
	createdAt := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	for _, hours := range []int{1, 6, 24, 72, 168} {
		lookback := time.Duration(hours) * time.Hour
		window, err := ComputeWindow(createdAt, lookback)
		require.NoError(t, err)
		assert.Equal(t, createdAt.Add(-lookback), window.Since, "lookback %dh", hours)
		assert.Equal(t, createdAt, window.Until, "lookback %dh", hours)
	}
}

func TestComputeWindowInvalidInput(t *testing.T) {
	createdAt := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	_, err := ComputeWindow(time.Time{}, DefaultLookback)
	assert.Error(t, err, "zero creation time must be rejected")

	_, err = ComputeWindow(createdAt, 0)
	assert.Error(t, err, "zero lookback must be rejected")

	_, err = ComputeWindow(createdAt, -time.Hour)
	assert.Error(t, err, "negative lookback must be rejected")
}

func TestWindowContainsUntilExclusive(t *testing.T) {
	window := Window{
		Since: time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, window.Contains(window.Since), "since is inclusive")
	assert.True(t, window.Contains(window.Until.Add(-time.Second)))
	assert.False(t, window.Contains(window.Until), "until is exclusive")
	assert.False(t, window.Contains(window.Since.Add(-time.Second)))
}
