package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seriesFromPoints(t *testing.T, ticker string, points map[string]float64) *types.PriceSeries {
	t.Helper()

	bars := make([]types.Bar, 0, len(points))
	for key, price := range points {
		date, err := time.Parse(types.DateKeyFormat, key)
		require.NoError(t, err)
		bars = append(bars, types.Bar{Date: date, AdjClose: price})
	}
	return types.NewPriceSeries(ticker, bars)
}

func bullishPattern(ticker string, start, end time.Time) pattern.Pattern {
	return pattern.Pattern{
		Ticker:               ticker,
		Name:                 ticker,
		StartDate:            start,
		EndDate:              end,
		Type:                 pattern.DirectionBullish,
		Ratio:                "10/10",
		AverageReturnPercent: 5,
	}
}

// TestRun_SingleBullishTrade tests the canonical stake-scaled trade:
// a 10% rise on a $1000 stake earns $100
func TestRun_SingleBullishTrade(t *testing.T) {
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-05-01": 100,
		"2023-05-31": 110,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]

	assert.Equal(t, "2023-05-01", trade.StartDate)
	assert.Equal(t, "2023-05-31", trade.EndDate)
	assert.InDelta(t, 100.0, trade.ReturnDollar, 1e-9)
	assert.InDelta(t, 10.0, trade.ReturnPercent, 1e-9)

	assert.Equal(t, 1, results.TradeCount)
	assert.InDelta(t, 100.0, results.TotalReturn, 1e-9)
	assert.InDelta(t, 25100.0, results.FinalCapital, 1e-9)
}

// TestRun_BearishTrade tests that a falling window profits a bearish pattern
func TestRun_BearishTrade(t *testing.T) {
	series := seriesFromPoints(t, "NG=F", map[string]float64{
		"2023-05-01": 100,
		"2023-05-31": 90,
	})

	p := bullishPattern("NG=F", day(2022, time.May, 1), day(2022, time.May, 31))
	p.Type = pattern.DirectionBearish

	engine := NewEngine(25000, 1000)
	results := engine.Run([]pattern.Pattern{p}, map[string]*types.PriceSeries{"NG=F": series}, 2023)

	require.Len(t, results.Trades, 1)
	assert.InDelta(t, 100.0, results.Trades[0].ReturnDollar, 1e-9)
	assert.InDelta(t, 10.0, results.Trades[0].ReturnPercent, 1e-9)
}

// TestRun_CapitalGateSkipsTrade tests that a depleted account places no trade
func TestRun_CapitalGateSkipsTrade(t *testing.T) {
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-05-01": 100,
		"2023-05-31": 110,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(500, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	assert.Empty(t, results.Trades)
	assert.Equal(t, 0, results.TradeCount)
	assert.InDelta(t, 500.0, results.FinalCapital, 1e-9)
}

// TestRun_ZeroReturnRecordedNotCounted tests that a flat trade stays in
// the ledger without touching the capital accounting
func TestRun_ZeroReturnRecordedNotCounted(t *testing.T) {
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-05-01": 100,
		"2023-05-31": 100,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	require.Len(t, results.Trades, 1)
	assert.Equal(t, 0, results.TradeCount)
	assert.InDelta(t, 25000.0, results.FinalCapital, 1e-9)
	assert.InDelta(t, 0.0, results.Trades[0].ReturnDollar, 1e-9)
}

// TestRun_MissingSeriesSkips tests that a pattern with no price data is
// skipped silently
func TestRun_MissingSeriesSkips(t *testing.T) {
	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{}, 2023)

	assert.Empty(t, results.Trades)
	assert.InDelta(t, 25000.0, results.FinalCapital, 1e-9)
}

// TestRun_MissingTargetDateSkips tests that a window absent from the
// target year is skipped
func TestRun_MissingTargetDateSkips(t *testing.T) {
	// Series covers only April; the shifted May window has no endpoints.
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-04-01": 100,
		"2023-04-20": 105,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	assert.Empty(t, results.Trades)
}

// TestRun_ChronologicalOrder tests that trades execute in start-date
// order regardless of input order
func TestRun_ChronologicalOrder(t *testing.T) {
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-02-01": 100, "2023-02-28": 110,
		"2023-08-01": 100, "2023-08-31": 105,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.August, 1), day(2022, time.August, 31)),
		bullishPattern("GC=F", day(2022, time.February, 1), day(2022, time.February, 28)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	require.Len(t, results.Trades, 2)
	assert.Equal(t, "2023-02-01", results.Trades[0].StartDate)
	assert.Equal(t, "2023-08-01", results.Trades[1].StartDate)
}

// TestRun_RiseAndDropExtremes tests the intra-window excursion stats
func TestRun_RiseAndDropExtremes(t *testing.T) {
	series := seriesFromPoints(t, "GC=F", map[string]float64{
		"2023-05-01": 100,
		"2023-05-10": 130,
		"2023-05-20": 90,
		"2023-05-31": 110,
	})

	patterns := []pattern.Pattern{
		bullishPattern("GC=F", day(2022, time.May, 1), day(2022, time.May, 31)),
	}

	engine := NewEngine(25000, 1000)
	results := engine.Run(patterns, map[string]*types.PriceSeries{"GC=F": series}, 2023)

	require.Len(t, results.Trades, 1)
	assert.InDelta(t, 30.0, results.Trades[0].MaxRisePercent, 1e-9)
	assert.InDelta(t, 10.0, results.Trades[0].MaxDropPercent, 1e-9)
}
