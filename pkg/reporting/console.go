package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/profitcycles/seasonal-scanner/internal/backtest"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// PrintPatterns renders the filtered pattern set as a table, ordered by
// ticker and start date.
func (r *DefaultConsoleReporter) PrintPatterns(patterns []pattern.Pattern) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("📊 SEASONAL PATTERNS (%d found)\n", len(patterns))
	fmt.Println(strings.Repeat("=", 50))

	if len(patterns) == 0 {
		fmt.Println("No consistent patterns found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Ticker", "Name", "Start", "End", "Type", "Ratio", "Avg Return %"})

	for _, p := range SortPatterns(patterns) {
		rec := NewPatternRecord(p)
		t.AppendRow(table.Row{
			rec.Ticker,
			rec.Name,
			rec.StartDate,
			rec.EndDate,
			rec.Type,
			rec.Ratio,
			fmt.Sprintf("%.2f", rec.AverageReturnPercent),
		})
	}

	t.Render()
}

// PrintYearlyDetails renders the per-year breakdown for one pattern.
func (r *DefaultConsoleReporter) PrintYearlyDetails(p pattern.Pattern) {
	fmt.Printf("\n📅 %s (%s) %s → %s [%s %s]\n",
		p.Ticker, p.Name,
		p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"),
		p.Type, p.Ratio)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Year", "Start", "End", "Start Price", "End Price", "Profit %", "Max Rise %", "Max Drop %"})

	rec := NewPatternRecord(p)
	for _, d := range rec.YearlyDetails {
		t.AppendRow(table.Row{
			d.Year,
			d.StartDate,
			d.EndDate,
			fmt.Sprintf("%.2f", d.StartPrice),
			fmt.Sprintf("%.2f", d.EndPrice),
			fmt.Sprintf("%.2f", d.ProfitPercent),
			fmt.Sprintf("%.2f", d.MaxRisePercent),
			fmt.Sprintf("%.2f", d.MaxDropPercent),
		})
	}

	t.Render()
}

// PrintBacktestResults prints the trade ledger and aggregate metrics.
func (r *DefaultConsoleReporter) PrintBacktestResults(results *backtest.Results) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("📊 BACKTEST RESULTS (%d)\n", results.TargetYear)
	fmt.Println(strings.Repeat("=", 50))

	if len(results.Trades) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Ticker", "Start", "End", "Start Price", "End Price", "Return $", "Return %"})

		for _, trade := range results.Trades {
			t.AppendRow(table.Row{
				trade.Ticker,
				trade.StartDate,
				trade.EndDate,
				fmt.Sprintf("%.2f", trade.StartPrice),
				fmt.Sprintf("%.2f", trade.EndPrice),
				fmt.Sprintf("%.2f", trade.ReturnDollar),
				fmt.Sprintf("%.2f", trade.ReturnPercent),
			})
		}

		t.Render()
	}

	summary := results.Summarize()

	fmt.Printf("💰 Initial Capital:    $%.2f\n", results.InitialCapital)
	fmt.Printf("💰 Final Capital:      $%.2f\n", results.FinalCapital)
	fmt.Printf("📈 Total Return:       $%.2f\n", results.TotalReturn)
	fmt.Printf("📈 Overall Profit:     %.2f%%\n", summary.OverallProfitPercent)
	fmt.Printf("📉 Max Drawdown:       %.2f%%\n", summary.MaxDrawdown)
	fmt.Printf("🔄 Counted Trades:     %d\n", results.TradeCount)
	fmt.Printf("✅ Win Rate:           %.1f%%\n", summary.WinRate)
	fmt.Printf("📊 Avg Return/Trade:   $%.2f (%.2f%%)\n", summary.AverageReturnPerTrade, summary.AverageReturnPercent)
}

// Package-level convenience functions

// PrintPatterns prints patterns using the default reporter.
func PrintPatterns(patterns []pattern.Pattern) {
	NewDefaultConsoleReporter().PrintPatterns(patterns)
}

// PrintBacktestResults prints backtest results using the default reporter.
func PrintBacktestResults(results *backtest.Results) {
	NewDefaultConsoleReporter().PrintBacktestResults(results)
}
