package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() Window {
	return Window{
		Since: time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC),
	}
}

func changeAt(id string, ts time.Time) Change {
	return Change{ID: id, Author: "dev", Timestamp: ts, Message: "change " + id}
}

func TestCorrelateFiltersToWindow(t *testing.T) {
	window := testWindow()

	// Newest-first, as a change source returns them. A change at
	// exactly until must be excluded (until is exclusive); a change at
	// exactly since must be included.
	changes := []Change{
		changeAt("after", window.Until.Add(time.Hour)),
		changeAt("boundary-until", window.Until),
		changeAt("in-recent", window.Until.Add(-3*time.Hour)),
		changeAt("in-older", window.Until.Add(-20*time.Hour)),
		changeAt("boundary-since", window.Since),
		changeAt("before", window.Since.Add(-time.Minute)),
	}

	result := Correlate(window, changes)

	require.Len(t, result.Changes, 3)
	assert.Equal(t, "in-recent", result.Changes[0].ID)
	assert.Equal(t, "in-older", result.Changes[1].ID)
	assert.Equal(t, "boundary-since", result.Changes[2].ID)
}

func TestCorrelatePreservesSourceOrder(t *testing.T) {
	window := testWindow()

	// Deliberately not sorted by timestamp; the correlator must not
	// re-sort what the source returned.
	changes := []Change{
		changeAt("first", window.Since.Add(2*time.Hour)),
		changeAt("second", window.Since.Add(10*time.Hour)),
		changeAt("third", window.Since.Add(5*time.Hour)),
	}

	result := Correlate(window, changes)

	require.Len(t, result.Changes, 3)
	assert.Equal(t, "first", result.Changes[0].ID)
	assert.Equal(t, "second", result.Changes[1].ID)
	assert.Equal(t, "third", result.Changes[2].ID)
	require.NotNil(t, result.MostRelevant)
	assert.Equal(t, "first", result.MostRelevant.ID)
}

func TestCorrelateEmptyWindow(t *testing.T) {
	window := testWindow()

	result := Correlate(window, nil)

	assert.Empty(t, result.Changes)
	assert.Nil(t, result.MostRelevant)
	assert.Equal(t, window, result.Window)
}

func TestCorrelateAllOutsideWindow(t *testing.T) {
	window := testWindow()
	changes := []Change{
		changeAt("late", window.Until.Add(time.Hour)),
		changeAt("early", window.Since.Add(-time.Hour)),
	}

	result := Correlate(window, changes)

	assert.Empty(t, result.Changes)
	assert.Nil(t, result.MostRelevant)
}
