package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/profitcycles/seasonal-scanner/internal/backtest"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
)

// WritePatternsCSV writes the pattern set to a CSV file, one row per
// pattern, ordered by ticker and start date.
func WritePatternsCSV(patterns []pattern.Pattern, path string) error {
	file, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"ticker", "name", "start_date", "end_date", "type", "ratio", "average_return_percent"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range SortPatterns(patterns) {
		rec := NewPatternRecord(p)
		row := []string{
			rec.Ticker,
			rec.Name,
			rec.StartDate,
			rec.EndDate,
			rec.Type,
			rec.Ratio,
			fmt.Sprintf("%.2f", rec.AverageReturnPercent),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteBacktestCSV writes the trade ledger to a CSV file in ledger order.
func WriteBacktestCSV(results *backtest.Results, path string) error {
	file, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"ticker", "start_date", "end_date", "start_price", "end_price", "return_dollar", "return_percent", "max_rise_percent", "max_drop_percent"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range results.Trades {
		row := []string{
			t.Ticker,
			t.StartDate,
			t.EndDate,
			fmt.Sprintf("%.2f", t.StartPrice),
			fmt.Sprintf("%.2f", t.EndPrice),
			fmt.Sprintf("%.2f", t.ReturnDollar),
			fmt.Sprintf("%.2f", t.ReturnPercent),
			fmt.Sprintf("%.2f", t.MaxRisePercent),
			fmt.Sprintf("%.2f", t.MaxDropPercent),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func createWithDirs(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.Create(path)
}
