package pattern

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcycles/seasonal-scanner/pkg/data"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

type stubProvider struct {
	series map[string]*types.PriceSeries
	calls  int
}

func (s *stubProvider) History(_ context.Context, ticker string) (*types.PriceSeries, error) {
	s.calls++
	series, ok := s.series[ticker]
	if !ok {
		return nil, data.ErrDataUnavailable
	}
	return series, nil
}

func (s *stubProvider) GetName() string { return "Stub Provider" }

// singleDayHorizon evaluates windows starting on exactly one day.
func singleDayHorizon(start time.Time) Horizon {
	return Horizon{
		First: start,
		Last:  start,
		Bound: start.AddDate(0, 0, 365),
	}
}

// TestGenerate_FindsConsistentPattern tests the end-to-end scan of one
// instrument with a known unanimous window
func TestGenerate_FindsConsistentPattern(t *testing.T) {
	series := buildSeries(t, "GC=F", map[string]float64{
		"2020-03-01": 100, "2020-03-21": 110,
		"2021-03-01": 50, "2021-03-21": 55,
		"2022-03-01": 200, "2022-03-21": 220,
	})

	provider := &stubProvider{series: map[string]*types.PriceSeries{"GC=F": series}}
	cfg := Config{MinDays: 20, MaxDays: 20, YearsBack: 3, Strictness: Strict}
	gen := NewGenerator(provider, nil, cfg, nil)

	best := gen.Generate(context.Background(), []string{"GC=F"}, singleDayHorizon(day(2023, time.March, 1)))

	require.Len(t, best, 1)
	p, ok := best[Key{Ticker: "GC=F", StartDate: "2023-03-01"}]
	require.True(t, ok)

	assert.Equal(t, "GC=F", p.Ticker)
	assert.Equal(t, day(2023, time.March, 1), p.StartDate)
	assert.Equal(t, day(2023, time.March, 21), p.EndDate)
	assert.Equal(t, DirectionBullish, p.Type)
	assert.Equal(t, "3/3", p.Ratio)
	assert.InDelta(t, 10.0, p.AverageReturnPercent, 1e-9)
	assert.Len(t, p.YearlyDetails, 3)
}

// TestGenerate_BestDurationWinsPerStartDate tests that two consistent
// durations sharing a start date reduce to the higher average return
func TestGenerate_BestDurationWinsPerStartDate(t *testing.T) {
	series := buildSeries(t, "GC=F", map[string]float64{
		"2020-03-01": 100, "2020-03-21": 110, "2020-03-22": 120,
		"2021-03-01": 50, "2021-03-21": 55, "2021-03-22": 60,
		"2022-03-01": 200, "2022-03-21": 220, "2022-03-22": 240,
	})

	provider := &stubProvider{series: map[string]*types.PriceSeries{"GC=F": series}}
	cfg := Config{MinDays: 20, MaxDays: 21, YearsBack: 3, Strictness: Strict}
	gen := NewGenerator(provider, nil, cfg, nil)

	best := gen.Generate(context.Background(), []string{"GC=F"}, singleDayHorizon(day(2023, time.March, 1)))

	require.Len(t, best, 1)
	p := best[Key{Ticker: "GC=F", StartDate: "2023-03-01"}]
	assert.Equal(t, day(2023, time.March, 22), p.EndDate)
	assert.InDelta(t, 20.0, p.AverageReturnPercent, 1e-9)
}

// TestGenerate_SkipsFailedInstrument tests that a fetch error skips the
// instrument without aborting the scan
func TestGenerate_SkipsFailedInstrument(t *testing.T) {
	series := buildSeries(t, "GC=F", map[string]float64{
		"2020-03-01": 100, "2020-03-21": 110,
		"2021-03-01": 50, "2021-03-21": 55,
		"2022-03-01": 200, "2022-03-21": 220,
	})

	provider := &stubProvider{series: map[string]*types.PriceSeries{"GC=F": series}}
	cfg := Config{MinDays: 20, MaxDays: 20, YearsBack: 3, Strictness: Strict}
	gen := NewGenerator(provider, nil, cfg, nil)

	best := gen.Generate(context.Background(), []string{"MISSING=F", "GC=F"}, singleDayHorizon(day(2023, time.March, 1)))

	require.Len(t, best, 1)
	_, ok := best[Key{Ticker: "GC=F", StartDate: "2023-03-01"}]
	assert.True(t, ok)
}

// TestGenerate_Idempotent tests that repeating a scan yields an
// identical pattern set
func TestGenerate_Idempotent(t *testing.T) {
	series := buildSeries(t, "GC=F", map[string]float64{
		"2020-03-01": 100, "2020-03-21": 110,
		"2021-03-01": 50, "2021-03-21": 55,
		"2022-03-01": 200, "2022-03-21": 220,
	})

	provider := &stubProvider{series: map[string]*types.PriceSeries{"GC=F": series}}
	cfg := Config{MinDays: 20, MaxDays: 20, YearsBack: 3, Strictness: Strict}
	gen := NewGenerator(provider, nil, cfg, nil)

	horizon := singleDayHorizon(day(2023, time.March, 1))
	first := gen.Generate(context.Background(), []string{"GC=F"}, horizon)
	second := gen.Generate(context.Background(), []string{"GC=F"}, horizon)

	assert.Equal(t, first, second)
}

// TestGenerate_NoPatternInNoise tests that an inconsistent window
// produces nothing
func TestGenerate_NoPatternInNoise(t *testing.T) {
	series := buildSeries(t, "GC=F", map[string]float64{
		"2020-03-01": 100, "2020-03-21": 110,
		"2021-03-01": 50, "2021-03-21": 45,
		"2022-03-01": 200, "2022-03-21": 220,
	})

	provider := &stubProvider{series: map[string]*types.PriceSeries{"GC=F": series}}
	cfg := Config{MinDays: 20, MaxDays: 20, YearsBack: 3, Strictness: Strict}
	gen := NewGenerator(provider, nil, cfg, nil)

	best := gen.Generate(context.Background(), []string{"GC=F"}, singleDayHorizon(day(2023, time.March, 1)))
	assert.Empty(t, best)
}

// TestCalendarYearHorizon tests the whole-year horizon bounds
func TestCalendarYearHorizon(t *testing.T) {
	h := CalendarYearHorizon(2027)
	assert.Equal(t, day(2027, time.January, 1), h.First)
	assert.Equal(t, day(2027, time.December, 31), h.Last)
	assert.Equal(t, day(2027, time.December, 31), h.Bound)
}

// TestLookAheadHorizon tests the rolling look-ahead bounds
func TestLookAheadHorizon(t *testing.T) {
	today := time.Date(2026, time.August, 28, 14, 5, 0, 0, time.UTC)
	h := LookAheadHorizon(today, 365)

	assert.Equal(t, day(2026, time.August, 28), h.First)
	assert.Equal(t, day(2027, time.August, 27), h.Last)
	assert.Equal(t, day(2027, time.August, 28), h.Bound)
}
