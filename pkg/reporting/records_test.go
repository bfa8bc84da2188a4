package reporting

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcycles/seasonal-scanner/internal/pattern"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePattern() pattern.Pattern {
	return pattern.Pattern{
		Ticker:               "GC=F",
		Name:                 "Gold",
		StartDate:            day(2027, time.March, 1),
		EndDate:              day(2027, time.April, 15),
		Type:                 pattern.DirectionBullish,
		Ratio:                "10/10",
		AverageReturnPercent: 4.266666,
		YearlyDetails: []pattern.YearlyDetail{
			{
				Year:           2026,
				StartDate:      day(2026, time.March, 1),
				EndDate:        day(2026, time.April, 15),
				StartPrice:     1800.123,
				EndPrice:       1870.456,
				Profit:         70.333,
				ProfitPercent:  3.907,
				MaxRisePercent: 5.5,
				MaxDropPercent: 1.25,
			},
		},
	}
}

// TestNewPatternRecord_RoundsAndFormats tests that serialization rounds
// to two decimals and renders canonical dates
func TestNewPatternRecord_RoundsAndFormats(t *testing.T) {
	rec := NewPatternRecord(samplePattern())

	assert.Equal(t, "2027-03-01", rec.StartDate)
	assert.Equal(t, "2027-04-15", rec.EndDate)
	assert.Equal(t, "bullish", rec.Type)
	assert.Equal(t, 4.27, rec.AverageReturnPercent)

	require.Len(t, rec.YearlyDetails, 1)
	assert.Equal(t, 1800.12, rec.YearlyDetails[0].StartPrice)
	assert.Equal(t, 3.91, rec.YearlyDetails[0].ProfitPercent)
}

// TestSaveLoadBestPatterns_Roundtrip tests that a saved set reads back
// with matching fields
func TestSaveLoadBestPatterns_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "best_patterns.json")
	original := samplePattern()

	require.NoError(t, SaveBestPatterns([]pattern.Pattern{original}, path))

	loaded, err := LoadBestPatterns(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	p := loaded[0]
	assert.Equal(t, original.Ticker, p.Ticker)
	assert.Equal(t, original.Name, p.Name)
	assert.True(t, original.StartDate.Equal(p.StartDate))
	assert.True(t, original.EndDate.Equal(p.EndDate))
	assert.Equal(t, original.Type, p.Type)
	assert.Equal(t, original.Ratio, p.Ratio)
	assert.InDelta(t, original.AverageReturnPercent, p.AverageReturnPercent, 0.005)

	require.Len(t, p.YearlyDetails, 1)
	assert.Equal(t, 2026, p.YearlyDetails[0].Year)
	assert.InDelta(t, 1800.12, p.YearlyDetails[0].StartPrice, 1e-9)
}

// TestLoadBestPatterns_InvalidDate tests that a corrupt record fails loading
func TestLoadBestPatterns_InvalidDate(t *testing.T) {
	rec := PatternRecord{Ticker: "GC=F", StartDate: "03/01/2027", EndDate: "2027-04-15"}
	_, err := rec.ToPattern()
	assert.Error(t, err)
}

// TestSortPatterns_TickerThenDate tests the shared output ordering
func TestSortPatterns_TickerThenDate(t *testing.T) {
	a := samplePattern()
	a.Ticker = "SI=F"
	b := samplePattern()
	b.StartDate = day(2027, time.June, 1)
	c := samplePattern()

	sorted := SortPatterns([]pattern.Pattern{a, b, c})

	assert.Equal(t, "GC=F", sorted[0].Ticker)
	assert.True(t, sorted[0].StartDate.Before(sorted[1].StartDate))
	assert.Equal(t, "SI=F", sorted[2].Ticker)
}

// TestRound2 tests the serialization rounding helper
func TestRound2(t *testing.T) {
	assert.Equal(t, 38.46, Round2(38.461538))
	assert.Equal(t, -1.24, Round2(-1.237))
	assert.Equal(t, 0.0, Round2(0))
}
