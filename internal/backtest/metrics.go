package backtest

import "gonum.org/v1/gonum/stat"

// Summary aggregates a trade ledger into report-level metrics.
type Summary struct {
	OverallProfitPercent  float64
	AverageReturnPerTrade float64
	AverageReturnPercent  float64
	WinRate               float64
	MaxDrawdown           float64
}

// Summarize derives the aggregate metrics from the ledger. Counting
// denominators use TradeCount (zero-return ledger entries are recorded
// but never counted), with zero guards throughout.
func (r *Results) Summarize() Summary {
	var s Summary

	if r.InitialCapital != 0 {
		s.OverallProfitPercent = r.TotalReturn / r.InitialCapital * 100
	}

	if r.TradeCount > 0 {
		s.AverageReturnPerTrade = r.TotalReturn / float64(r.TradeCount)

		wins := 0
		percents := make([]float64, 0, r.TradeCount)
		for _, t := range r.Trades {
			if t.ReturnDollar > 0 {
				wins++
			}
			if t.ReturnDollar != 0 {
				percents = append(percents, t.ReturnPercent)
			}
		}
		s.WinRate = float64(wins) / float64(r.TradeCount) * 100
		if len(percents) > 0 {
			s.AverageReturnPercent = stat.Mean(percents, nil)
		}
	}

	s.MaxDrawdown = CalculateMaxDrawdown(r.CapitalCurve())
	return s
}

// CapitalCurve returns the running capital sequence: the initial capital
// followed by the capital after each ledger entry in order.
func (r *Results) CapitalCurve() []float64 {
	curve := make([]float64, 0, len(r.Trades)+1)
	capital := r.InitialCapital
	curve = append(curve, capital)
	for _, t := range r.Trades {
		capital += t.ReturnDollar
		curve = append(curve, capital)
	}
	return curve
}

// CalculateMaxDrawdown walks a capital sequence tracking the running
// peak and returns the largest peak-to-trough decline as a percentage of
// the peak. The peak is monotonic: once seen it is never un-seen.
func CalculateMaxDrawdown(capitalOverTime []float64) float64 {
	if len(capitalOverTime) == 0 {
		return 0
	}

	peak := capitalOverTime[0]
	maxDrawdown := 0.0
	for _, capital := range capitalOverTime {
		if capital > peak {
			peak = capital
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - capital) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown * 100
}
