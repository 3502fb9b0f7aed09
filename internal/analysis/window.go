package analysis

import (
	"time"

	"github.com/pagertrace/pagertrace/internal/errors"
)

// DefaultLookback is how far before an incident's creation the
// correlation window reaches when the caller does not override it.
const DefaultLookback = 24 * time.Hour

// ComputeWindow derives the lookback window for an incident created at
// the given instant: until = createdAt (exclusive), since = createdAt
// minus lookback. Pure; the same inputs always yield the same window.
func ComputeWindow(createdAt time.Time, lookback time.Duration) (Window, error) {
	if createdAt.IsZero() {
		return Window{}, errors.InvalidInputf("incident creation time is not set")
	}
	if lookback <= 0 {
		return Window{}, errors.InvalidInputf("lookback must be positive, got %s", lookback)
	}
	return Window{
		Since: createdAt.Add(-lookback),
		Until: createdAt,
	}, nil
}
