package pattern

import "sort"

// dedupWindowDays is the rolling window within which at most one signal
// per instrument may stay active.
const dedupWindowDays = 30

// Filter reduces competing candidate patterns to a non-overlapping set:
// CollapseAdjacent first, then BestPer30Days.
func Filter(patterns []Pattern) []Pattern {
	return BestPer30Days(CollapseAdjacent(patterns))
}

// CollapseAdjacent removes near-duplicate windows that are trivial
// variations of the same signal: same-instrument candidates whose start
// dates are at most one day apart, or whose end dates coincide, collapse
// to the one with the higher average return.
func CollapseAdjacent(patterns []Pattern) []Pattern {
	sorted := make([]Pattern, len(patterns))
	copy(sorted, patterns)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.EndDate.Before(b.EndDate)
	})

	var filtered []Pattern
	var held *Pattern

	for i := range sorted {
		p := sorted[i]
		if held != nil && p.Ticker == held.Ticker {
			daysApart := int(p.StartDate.Sub(held.StartDate).Hours() / 24)
			if daysApart <= 1 || p.EndDate.Equal(held.EndDate) {
				if p.AverageReturnPercent > held.AverageReturnPercent {
					held = &p
				}
				continue
			}
		}
		if held != nil {
			filtered = append(filtered, *held)
		}
		held = &p
	}

	if held != nil {
		filtered = append(filtered, *held)
	}

	return filtered
}

// BestPer30Days enforces at most one active signal per instrument within
// any rolling 30-day window. Windows are anchored at the first pattern
// that opens them; only the best average return per window survives.
func BestPer30Days(patterns []Pattern) []Pattern {
	grouped := make(map[string][]Pattern)
	var tickers []string
	for _, p := range patterns {
		if _, ok := grouped[p.Ticker]; !ok {
			tickers = append(tickers, p.Ticker)
		}
		grouped[p.Ticker] = append(grouped[p.Ticker], p)
	}
	sort.Strings(tickers)

	var filtered []Pattern
	for _, ticker := range tickers {
		group := grouped[ticker]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartDate.Before(group[j].StartDate)
		})

		var windowOpen bool
		var windowStart Pattern
		var best Pattern

		for _, p := range group {
			if !windowOpen || p.StartDate.After(windowStart.StartDate.AddDate(0, 0, dedupWindowDays)) {
				if windowOpen {
					filtered = append(filtered, best)
				}
				windowOpen = true
				windowStart = p
				best = p
				continue
			}
			if p.AverageReturnPercent > best.AverageReturnPercent {
				best = p
			}
		}
		if windowOpen {
			filtered = append(filtered, best)
		}
	}

	return filtered
}
