package types

import (
	"sort"
	"time"
)

// DateKeyFormat is the canonical YYYY-MM-DD representation used for
// series lookups, pattern keys and all serialized output.
const DateKeyFormat = "2006-01-02"

// DateKey formats a timestamp as its canonical daily key.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyFormat)
}

// Day truncates a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Bar is a single daily observation of an instrument's adjusted close.
type Bar struct {
	Date     time.Time
	AdjClose float64
}

// PriceSeries is an instrument's daily adjusted-close history, densified
// to calendar-day frequency so that every date between the first and last
// trading day resolves to a price. Gaps (weekends, holidays) are filled
// backward from the next available trading day.
type PriceSeries struct {
	ticker string
	dates  []time.Time
	closes []float64
	index  map[string]int
}

// NewPriceSeries builds a densified series from raw daily bars.
// Bars may arrive unordered; duplicate dates keep the first occurrence.
func NewPriceSeries(ticker string, bars []Bar) *PriceSeries {
	s := &PriceSeries{ticker: ticker, index: make(map[string]int)}
	if len(bars) == 0 {
		return s
	}

	sorted := make([]Bar, 0, len(bars))
	seen := make(map[string]bool, len(bars))
	for _, b := range bars {
		d := Day(b.Date)
		if seen[DateKey(d)] {
			continue
		}
		seen[DateKey(d)] = true
		sorted = append(sorted, Bar{Date: d, AdjClose: b.AdjClose})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	first := sorted[0].Date
	last := sorted[len(sorted)-1].Date

	j := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		for j < len(sorted)-1 && sorted[j].Date.Before(day) {
			j++
		}
		s.index[DateKey(day)] = len(s.dates)
		s.dates = append(s.dates, day)
		s.closes = append(s.closes, sorted[j].AdjClose)
	}

	return s
}

// Ticker returns the instrument identifier this series belongs to.
func (s *PriceSeries) Ticker() string {
	return s.ticker
}

// At returns the adjusted close for an exact calendar date.
func (s *PriceSeries) At(date time.Time) (float64, bool) {
	i, ok := s.index[DateKey(date)]
	if !ok {
		return 0, false
	}
	return s.closes[i], true
}

// Range returns the maximum and minimum adjusted close observed across
// the inclusive [start, end] interval. Both endpoints must be indexed.
func (s *PriceSeries) Range(start, end time.Time) (max, min float64, ok bool) {
	i, okStart := s.index[DateKey(start)]
	j, okEnd := s.index[DateKey(end)]
	if !okStart || !okEnd || j < i {
		return 0, 0, false
	}

	max, min = s.closes[i], s.closes[i]
	for k := i + 1; k <= j; k++ {
		if s.closes[k] > max {
			max = s.closes[k]
		}
		if s.closes[k] < min {
			min = s.closes[k]
		}
	}
	return max, min, true
}

// First returns the earliest indexed date.
func (s *PriceSeries) First() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[0]
}

// Last returns the latest indexed date.
func (s *PriceSeries) Last() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[len(s.dates)-1]
}

// Len returns the number of indexed calendar days.
func (s *PriceSeries) Len() int {
	return len(s.dates)
}

// Empty reports whether the series holds no observations.
func (s *PriceSeries) Empty() bool {
	return len(s.dates) == 0
}
