package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/profitcycles/seasonal-scanner/internal/backtest"
)

// backtestReport is the serialized form of a backtest run.
type backtestReport struct {
	TargetYear            int                    `json:"target_year"`
	InitialCapital        float64                `json:"initial_capital"`
	TradeStake            float64                `json:"trade_stake"`
	FinalCapital          float64                `json:"final_capital"`
	TotalReturn           float64                `json:"total_return"`
	TradeCount            int                    `json:"trade_count"`
	OverallProfitPercent  float64                `json:"overall_profit_percent"`
	AverageReturnPerTrade float64                `json:"average_return_per_trade"`
	AverageReturnPercent  float64                `json:"average_return_percent"`
	WinRate               float64                `json:"win_rate"`
	MaxDrawdown           float64                `json:"max_drawdown"`
	Trades                []backtest.TradeResult `json:"trades"`
}

// SaveBacktestResults writes the trade ledger and aggregate metrics to
// a JSON file.
func SaveBacktestResults(results *backtest.Results, path string) error {
	summary := results.Summarize()

	trades := make([]backtest.TradeResult, len(results.Trades))
	for i, t := range results.Trades {
		t.StartPrice = Round2(t.StartPrice)
		t.EndPrice = Round2(t.EndPrice)
		t.ReturnDollar = Round2(t.ReturnDollar)
		t.ReturnPercent = Round2(t.ReturnPercent)
		t.MaxRisePercent = Round2(t.MaxRisePercent)
		t.MaxDropPercent = Round2(t.MaxDropPercent)
		trades[i] = t
	}

	report := backtestReport{
		TargetYear:            results.TargetYear,
		InitialCapital:        Round2(results.InitialCapital),
		TradeStake:            Round2(results.TradeStake),
		FinalCapital:          Round2(results.FinalCapital),
		TotalReturn:           Round2(results.TotalReturn),
		TradeCount:            results.TradeCount,
		OverallProfitPercent:  Round2(summary.OverallProfitPercent),
		AverageReturnPerTrade: Round2(summary.AverageReturnPerTrade),
		AverageReturnPercent:  Round2(summary.AverageReturnPercent),
		WinRate:               Round2(summary.WinRate),
		MaxDrawdown:           Round2(summary.MaxDrawdown),
		Trades:                trades,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
