package analysis

// Correlate joins an incident's lookback window with the changes the
// source returned for it. Changes are filtered to [window.Since,
// window.Until) but never re-sorted: the source's newest-first order is
// trusted, so the first surviving element is the most recent in-window
// change and becomes MostRelevant.
//
// Zero in-window changes is a legitimate outcome recorded as an explicit
// empty result, so the recommendation phase can say "no correlated
// changes" instead of omitting commentary.
func Correlate(window Window, changes []Change) CorrelationResult {
	var inWindow []Change
	for _, c := range changes {
		if window.Contains(c.Timestamp) {
			inWindow = append(inWindow, c)
		}
	}

	result := CorrelationResult{
		Window:  window,
		Changes: inWindow,
	}
	if len(inWindow) > 0 {
		result.MostRelevant = &inWindow[0]
	}
	return result
}
