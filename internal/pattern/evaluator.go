package pattern

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/profitcycles/seasonal-scanner/internal/dates"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// Evaluator classifies candidate windows against a lookback horizon.
// It only reads the price series and carries no mutable state.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates an evaluator for the given scan configuration.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate walks the YearsBack years preceding start's year, shifting the
// window into each one, and credits the year bullish or bearish by
// comparing the adjusted closes at the shifted endpoints. Years with a
// missing endpoint earn no credit. The second return value is false when
// the window is not consistent under the configured strictness.
func (e *Evaluator) Evaluate(series *types.PriceSeries, start, end time.Time) (Classification, bool) {
	bullish, bearish := 0, 0

	for year := start.Year() - e.cfg.YearsBack; year < start.Year(); year++ {
		s, en := dates.ShiftWindow(start, end, year)

		startPrice, ok := series.At(s)
		if !ok {
			continue
		}
		endPrice, ok := series.At(en)
		if !ok {
			continue
		}

		switch {
		case endPrice > startPrice:
			bullish++
		case endPrice < startPrice:
			bearish++
		}
	}

	n := e.cfg.YearsBack
	switch {
	case bullish == n:
		return Classification{Ratio: fmt.Sprintf("%d/%d", n, n), Direction: DirectionBullish}, true
	case bearish == n:
		return Classification{Ratio: fmt.Sprintf("%d/%d", n, n), Direction: DirectionBearish}, true
	}

	if e.cfg.Strictness == NearUnanimous && n > 1 {
		switch {
		case bullish == n-1:
			return Classification{Ratio: fmt.Sprintf("%d/%d", n-1, n), Direction: DirectionBullish}, true
		case bearish == n-1:
			return Classification{Ratio: fmt.Sprintf("%d/%d", n-1, n), Direction: DirectionBearish}, true
		}
	}

	return Classification{}, false
}

// YearlyDetails repeats the lookback walk and computes per-year realized
// statistics for the years where both shifted endpoints are indexed.
// Missing years are omitted, so the result may be shorter than YearsBack.
func (e *Evaluator) YearlyDetails(series *types.PriceSeries, start, end time.Time) []YearlyDetail {
	var details []YearlyDetail

	for year := start.Year() - e.cfg.YearsBack; year < start.Year(); year++ {
		s, en := dates.ShiftWindow(start, end, year)

		startPrice, ok := series.At(s)
		if !ok {
			continue
		}
		endPrice, ok := series.At(en)
		if !ok {
			continue
		}

		maxPrice, minPrice, ok := series.Range(s, en)
		if !ok {
			continue
		}

		profit := endPrice - startPrice
		detail := YearlyDetail{
			Year:       year,
			StartDate:  s,
			EndDate:    en,
			StartPrice: startPrice,
			EndPrice:   endPrice,
			Profit:     profit,
		}
		if startPrice != 0 {
			detail.ProfitPercent = profit / startPrice * 100
			detail.MaxRisePercent = (maxPrice - startPrice) / startPrice * 100
			detail.MaxDropPercent = (startPrice - minPrice) / startPrice * 100
		}
		details = append(details, detail)
	}

	return details
}

// AverageReturn computes the direction-adjusted mean profit percent over
// the yearly details actually present, never over the configured
// lookback count.
func AverageReturn(details []YearlyDetail, direction Direction) float64 {
	if len(details) == 0 {
		return 0
	}

	returns := make([]float64, len(details))
	for i, d := range details {
		if direction == DirectionBullish {
			returns[i] = d.ProfitPercent
		} else {
			returns[i] = -d.ProfitPercent
		}
	}
	return stat.Mean(returns, nil)
}
