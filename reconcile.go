package banker

// FindMissing returns the dates of the expected periods that have no document.
//
// 'observed' must be sorted in ascending order; it is read but never modified,
// so the same slice can be reconciled again with the same result.
//
// Starting at 'start', each period is satisfied by the earliest remaining
// observed date that falls in policy.ToleranceWindow(windowStart). The next
// window then starts on that observed date, not on a fixed grid, so that a
// late but present statement does not shift every following period.
// When no document satisfies the window, the window moves by one period and
// its new start is reported missing.
//
// The last period, the one that may still be in progress on 'end', is never
// reported.
func FindMissing(policy FrequencyPolicy, observed []Date, start, end Date) []Date {
	var missing []Date
	if policy.PeriodDays <= 0 {
		return missing // the sweep would never advance
	}
	windowStart := start
	effectiveEnd := end.Add(-policy.PeriodDays)

	// Documents older than the first expected period cannot satisfy any window.
	next := 0
	for next < len(observed) && observed[next].Before(start) {
		next++
	}

	for windowStart.Before(effectiveEnd) {
		if next < len(observed) && policy.ToleranceWindow(windowStart).Contains(observed[next]) {
			windowStart = observed[next]
			next++
			continue
		}
		windowStart = windowStart.Add(policy.PeriodDays)
		missing = append(missing, windowStart)
	}
	return missing
}
