package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestNewPriceSeries_Empty tests that an empty bar slice yields an empty series
func TestNewPriceSeries_Empty(t *testing.T) {
	s := NewPriceSeries("GC=F", nil)
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Len())
}

// TestNewPriceSeries_DensifiesWithBackwardFill tests that calendar gaps
// between trading days are filled from the next available observation
func TestNewPriceSeries_DensifiesWithBackwardFill(t *testing.T) {
	s := NewPriceSeries("GC=F", []Bar{
		{Date: day(2023, time.January, 6), AdjClose: 100}, // Friday
		{Date: day(2023, time.January, 9), AdjClose: 105}, // Monday
	})

	require.Equal(t, 4, s.Len())

	// Weekend days resolve to Monday's price
	sat, ok := s.At(day(2023, time.January, 7))
	require.True(t, ok)
	assert.Equal(t, 105.0, sat)

	sun, ok := s.At(day(2023, time.January, 8))
	require.True(t, ok)
	assert.Equal(t, 105.0, sun)

	fri, ok := s.At(day(2023, time.January, 6))
	require.True(t, ok)
	assert.Equal(t, 100.0, fri)
}

// TestNewPriceSeries_UnorderedBars tests that bars may arrive in any order
func TestNewPriceSeries_UnorderedBars(t *testing.T) {
	s := NewPriceSeries("CL=F", []Bar{
		{Date: day(2023, time.March, 3), AdjClose: 80},
		{Date: day(2023, time.March, 1), AdjClose: 78},
		{Date: day(2023, time.March, 2), AdjClose: 79},
	})

	assert.Equal(t, day(2023, time.March, 1), s.First())
	assert.Equal(t, day(2023, time.March, 3), s.Last())

	price, ok := s.At(day(2023, time.March, 2))
	require.True(t, ok)
	assert.Equal(t, 79.0, price)
}

// TestNewPriceSeries_DuplicateDatesKeepFirst tests the duplicate policy
func TestNewPriceSeries_DuplicateDatesKeepFirst(t *testing.T) {
	s := NewPriceSeries("SI=F", []Bar{
		{Date: day(2023, time.May, 1), AdjClose: 25},
		{Date: day(2023, time.May, 1), AdjClose: 99},
	})

	price, ok := s.At(day(2023, time.May, 1))
	require.True(t, ok)
	assert.Equal(t, 25.0, price)
}

// TestAt_OutsideSeries tests lookups before and after the covered span
func TestAt_OutsideSeries(t *testing.T) {
	s := NewPriceSeries("GC=F", []Bar{
		{Date: day(2023, time.June, 1), AdjClose: 100},
		{Date: day(2023, time.June, 5), AdjClose: 101},
	})

	_, ok := s.At(day(2023, time.May, 31))
	assert.False(t, ok)

	_, ok = s.At(day(2023, time.June, 6))
	assert.False(t, ok)
}

// TestRange_InclusiveEndpoints tests that both window endpoints
// participate in the extremes
func TestRange_InclusiveEndpoints(t *testing.T) {
	s := NewPriceSeries("NG=F", []Bar{
		{Date: day(2023, time.July, 1), AdjClose: 10},
		{Date: day(2023, time.July, 2), AdjClose: 14},
		{Date: day(2023, time.July, 3), AdjClose: 8},
		{Date: day(2023, time.July, 4), AdjClose: 12},
	})

	max, min, ok := s.Range(day(2023, time.July, 1), day(2023, time.July, 4))
	require.True(t, ok)
	assert.Equal(t, 14.0, max)
	assert.Equal(t, 8.0, min)
}

// TestRange_SingleDay tests the degenerate one-day window
func TestRange_SingleDay(t *testing.T) {
	s := NewPriceSeries("NG=F", []Bar{
		{Date: day(2023, time.July, 1), AdjClose: 10},
		{Date: day(2023, time.July, 2), AdjClose: 14},
	})

	max, min, ok := s.Range(day(2023, time.July, 2), day(2023, time.July, 2))
	require.True(t, ok)
	assert.Equal(t, 14.0, max)
	assert.Equal(t, 14.0, min)
}

// TestRange_MissingEndpoint tests that an unindexed endpoint fails the lookup
func TestRange_MissingEndpoint(t *testing.T) {
	s := NewPriceSeries("NG=F", []Bar{
		{Date: day(2023, time.July, 1), AdjClose: 10},
	})

	_, _, ok := s.Range(day(2023, time.July, 1), day(2023, time.July, 5))
	assert.False(t, ok)
}

// TestDateKey_Canonical tests the canonical key format
func TestDateKey_Canonical(t *testing.T) {
	assert.Equal(t, "2023-02-05", DateKey(time.Date(2023, time.February, 5, 18, 4, 0, 0, time.UTC)))
}
