package backtest

import (
	"sort"

	"github.com/profitcycles/seasonal-scanner/internal/dates"
	"github.com/profitcycles/seasonal-scanner/internal/monitoring"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// Default capital settings for the simulated account.
const (
	DefaultInitialCapital = 25000.0
	DefaultTradeStake     = 1000.0
)

// TradeResult is one recorded trade in the ledger. Immutable once
// appended; dates are rendered YYYY-MM-DD.
type TradeResult struct {
	Ticker         string  `json:"ticker"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	StartPrice     float64 `json:"start_price"`
	EndPrice       float64 `json:"end_price"`
	ReturnDollar   float64 `json:"return_dollar"`
	ReturnPercent  float64 `json:"return_percent"`
	MaxRisePercent float64 `json:"max_rise_percent"`
	MaxDropPercent float64 `json:"max_drop_percent"`
}

// Results is the outcome of replaying a pattern set against a target
// year: the chronological trade ledger plus the capital accounting.
type Results struct {
	Trades         []TradeResult
	TotalReturn    float64
	FinalCapital   float64
	TradeCount     int
	InitialCapital float64
	TradeStake     float64
	TargetYear     int
}

// Engine replays filtered patterns against a target year's price series,
// staking a fixed amount per trade against a capital account.
type Engine struct {
	initialCapital float64
	tradeStake     float64
}

// NewEngine creates a backtest engine with the given capital settings.
func NewEngine(initialCapital, tradeStake float64) *Engine {
	return &Engine{
		initialCapital: initialCapital,
		tradeStake:     tradeStake,
	}
}

// Run shifts each pattern's window into targetYear and simulates the
// trade. Patterns are processed in chronological start-date order.
// Skips are local and non-fatal: a missing series, a window date absent
// from the target year, or capital below the stake all skip that pattern
// only. Capital exhaustion never halts the run; later patterns are still
// evaluated and skipped the same way since capital only decreases.
func (e *Engine) Run(patterns []pattern.Pattern, seriesByTicker map[string]*types.PriceSeries, targetYear int) *Results {
	results := &Results{
		InitialCapital: e.initialCapital,
		TradeStake:     e.tradeStake,
		FinalCapital:   e.initialCapital,
		TargetYear:     targetYear,
	}

	ordered := make([]pattern.Pattern, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	capital := e.initialCapital

	for _, p := range ordered {
		series, ok := seriesByTicker[p.Ticker]
		if !ok || series == nil || series.Empty() {
			continue
		}
		if capital < e.tradeStake {
			continue
		}

		start, end := dates.ShiftWindow(p.StartDate, p.EndDate, targetYear)

		startPrice, ok := series.At(start)
		if !ok {
			continue
		}
		endPrice, ok := series.At(end)
		if !ok {
			continue
		}
		maxPrice, minPrice, ok := series.Range(start, end)
		if !ok {
			continue
		}

		var profit float64
		if p.Type == pattern.DirectionBearish {
			profit = startPrice - endPrice
		} else {
			profit = endPrice - startPrice
		}

		// A zero start price yields a zero-valued trade, not an error.
		var profitPercent, maxRisePercent, maxDropPercent float64
		if startPrice != 0 {
			profitPercent = profit / startPrice * 100
			maxRisePercent = (maxPrice - startPrice) / startPrice * 100
			maxDropPercent = (startPrice - minPrice) / startPrice * 100
		}

		tradeReturn := e.tradeStake * profitPercent / 100
		if tradeReturn != 0 {
			results.TradeCount++
			capital += tradeReturn
			results.TotalReturn += tradeReturn
			monitoring.RecordTradeSimulated(p.Ticker)
		}

		// Zero-return trades stay in the ledger but are not counted.
		results.Trades = append(results.Trades, TradeResult{
			Ticker:         p.Ticker,
			StartDate:      types.DateKey(start),
			EndDate:        types.DateKey(end),
			StartPrice:     startPrice,
			EndPrice:       endPrice,
			ReturnDollar:   tradeReturn,
			ReturnPercent:  profitPercent,
			MaxRisePercent: maxRisePercent,
			MaxDropPercent: maxDropPercent,
		})
	}

	results.FinalCapital = capital
	return results
}
