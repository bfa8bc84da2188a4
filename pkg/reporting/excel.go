package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/profitcycles/seasonal-scanner/internal/backtest"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
)

// ExcelStyles holds the style IDs shared across sheets.
type ExcelStyles struct {
	HeaderStyle  int
	NumberStyle  int
	PercentStyle int
}

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WritePatternsXLSX writes the pattern set to a workbook with a summary
// sheet and a per-year detail sheet.
func (r *DefaultExcelReporter) WritePatternsXLSX(patterns []pattern.Pattern, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const patternsSheet = "Patterns"
	const detailsSheet = "Yearly Details"

	fx.SetSheetName(fx.GetSheetName(0), patternsSheet)
	fx.NewSheet(detailsSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writePatternsSheet(fx, patternsSheet, patterns, styles); err != nil {
		return err
	}
	if err := r.writeDetailsSheet(fx, detailsSheet, patterns, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// WriteBacktestXLSX writes the trade ledger and aggregate metrics to a
// workbook.
func (r *DefaultExcelReporter) WriteBacktestXLSX(results *backtest.Results, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(summarySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, results, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, results, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00, values already carry percent semantics
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writePatternsSheet(fx *excelize.File, sheet string, patterns []pattern.Pattern, styles ExcelStyles) error {
	headers := []string{"Ticker", "Name", "Start Date", "End Date", "Type", "Ratio", "Avg Return %"}
	if err := r.writeHeaderRow(fx, sheet, headers, styles); err != nil {
		return err
	}

	for i, p := range SortPatterns(patterns) {
		rec := NewPatternRecord(p)
		row := i + 2
		values := []interface{}{rec.Ticker, rec.Name, rec.StartDate, rec.EndDate, rec.Type, rec.Ratio, rec.AverageReturnPercent}
		if err := r.writeRow(fx, sheet, row, values, styles); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "G", 16)
}

func (r *DefaultExcelReporter) writeDetailsSheet(fx *excelize.File, sheet string, patterns []pattern.Pattern, styles ExcelStyles) error {
	headers := []string{"Ticker", "Pattern Start", "Year", "Start Date", "End Date", "Start Price", "End Price", "Profit %", "Max Rise %", "Max Drop %"}
	if err := r.writeHeaderRow(fx, sheet, headers, styles); err != nil {
		return err
	}

	row := 2
	for _, p := range SortPatterns(patterns) {
		rec := NewPatternRecord(p)
		for _, d := range rec.YearlyDetails {
			values := []interface{}{rec.Ticker, rec.StartDate, d.Year, d.StartDate, d.EndDate, d.StartPrice, d.EndPrice, d.ProfitPercent, d.MaxRisePercent, d.MaxDropPercent}
			if err := r.writeRow(fx, sheet, row, values, styles); err != nil {
				return err
			}
			row++
		}
	}

	return fx.SetColWidth(sheet, "A", "J", 14)
}

func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, results *backtest.Results, styles ExcelStyles) error {
	headers := []string{"Ticker", "Start Date", "End Date", "Start Price", "End Price", "Return $", "Return %", "Max Rise %", "Max Drop %"}
	if err := r.writeHeaderRow(fx, sheet, headers, styles); err != nil {
		return err
	}

	for i, t := range results.Trades {
		row := i + 2
		values := []interface{}{t.Ticker, t.StartDate, t.EndDate, t.StartPrice, t.EndPrice, Round2(t.ReturnDollar), Round2(t.ReturnPercent), Round2(t.MaxRisePercent), Round2(t.MaxDropPercent)}
		if err := r.writeRow(fx, sheet, row, values, styles); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "I", 14)
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, results *backtest.Results, styles ExcelStyles) error {
	summary := results.Summarize()

	rows := [][]interface{}{
		{"Target Year", results.TargetYear},
		{"Initial Capital", Round2(results.InitialCapital)},
		{"Final Capital", Round2(results.FinalCapital)},
		{"Total Return", Round2(results.TotalReturn)},
		{"Overall Profit %", Round2(summary.OverallProfitPercent)},
		{"Counted Trades", results.TradeCount},
		{"Win Rate %", Round2(summary.WinRate)},
		{"Avg Return / Trade", Round2(summary.AverageReturnPerTrade)},
		{"Avg Return %", Round2(summary.AverageReturnPercent)},
		{"Max Drawdown %", Round2(summary.MaxDrawdown)},
	}

	if err := r.writeHeaderRow(fx, sheet, []string{"Metric", "Value"}, styles); err != nil {
		return err
	}
	for i, values := range rows {
		if err := r.writeRow(fx, sheet, i+2, values, styles); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "B", 22)
}

func (r *DefaultExcelReporter) writeHeaderRow(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeRow(fx *excelize.File, sheet string, row int, values []interface{}, styles ExcelStyles) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if _, isFloat := v.(float64); isFloat {
			if err := fx.SetCellStyle(sheet, cell, cell, styles.NumberStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

// Package-level convenience functions

// WritePatternsXLSX writes patterns using the default reporter.
func WritePatternsXLSX(patterns []pattern.Pattern, path string) error {
	return NewDefaultExcelReporter().WritePatternsXLSX(patterns, path)
}

// WriteBacktestXLSX writes backtest results using the default reporter.
func WriteBacktestXLSX(results *backtest.Results, path string) error {
	return NewDefaultExcelReporter().WriteBacktestXLSX(results, path)
}
