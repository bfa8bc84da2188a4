package main

import (
	"flag"
	"fmt"
	"strings"
)

// BacktestFlags holds all command line flags for the backtest command
type BacktestFlags struct {
	// Pattern input
	Patterns *string
	Tickers  *string

	// Target
	Year *int

	// Rescan parameters (used when no pattern file is given)
	MinDays       *int
	MaxDays       *int
	YearsBack     *int
	NearUnanimous *bool

	// Account settings
	InitialCapital *float64
	TradeStake     *float64

	// Data source
	Source        *string
	DataRoot      *string
	BybitCategory *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool

	// Environment
	EnvFile *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewBacktestFlags creates and registers all backtest command line flags
func NewBacktestFlags() *BacktestFlags {
	return &BacktestFlags{
		Patterns: flag.String("patterns", "", "Path to a best_patterns.json file (empty = rescan the prior year)"),
		Tickers:  flag.String("tickers", "", "Comma-separated instrument list for the rescan path"),

		Year: flag.Int("year", 0, "Target year to replay patterns against (0 = current year)"),

		MinDays:       flag.Int("min-days", 0, "Minimum window duration in days (rescan only)"),
		MaxDays:       flag.Int("max-days", 0, "Maximum window duration in days (rescan only)"),
		YearsBack:     flag.Int("years-back", 0, "Lookback years required for consistency (rescan only)"),
		NearUnanimous: flag.Bool("near-unanimous", false, "Accept one dissenting or missing lookback year (rescan only)"),

		InitialCapital: flag.Float64("capital", 0, "Initial capital for the simulated account"),
		TradeStake:     flag.Float64("stake", 0, "Fixed stake per trade"),

		Source:        flag.String("source", "", "Data source (yahoo, csv, bybit)"),
		DataRoot:      flag.String("data-root", "", "Data root directory for the csv source"),
		BybitCategory: flag.String("bybit-category", "", "Bybit market category (spot, linear, inverse)"),

		OutputDir:   flag.String("output", "", "Output directory (default: results/backtest_<year>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),

		EnvFile: flag.String("env", ".env", "Environment file path"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateBacktestFlags performs validation on backtest flag combinations
func ValidateBacktestFlags(flags *BacktestFlags) error {
	if *flags.Year < 0 {
		return fmt.Errorf("year must be non-negative")
	}
	if *flags.InitialCapital < 0 {
		return fmt.Errorf("capital must be non-negative, got: %.2f", *flags.InitialCapital)
	}
	if *flags.TradeStake < 0 {
		return fmt.Errorf("stake must be non-negative, got: %.2f", *flags.TradeStake)
	}
	if *flags.Source != "" {
		switch *flags.Source {
		case "yahoo", "csv", "bybit":
		default:
			return fmt.Errorf("invalid source: %s (valid: yahoo, csv, bybit)", *flags.Source)
		}
	}
	return nil
}

// SplitTickers parses the comma-separated ticker list.
func SplitTickers(raw string) []string {
	if raw == "" {
		return nil
	}
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tickers = append(tickers, strings.ToUpper(t))
	}
	return tickers
}

// PrintBacktestUsageExamples prints usage examples for the backtest command
func PrintBacktestUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"backtest -patterns results/scan_2022/best_patterns.json -year 2023",
			"Replay a saved pattern set against 2023",
		},
		{
			"backtest -year 2023",
			"Rescan 2022, then replay the surviving patterns against 2023",
		},
		{
			"backtest -year 2023 -capital 50000 -stake 2000",
			"Backtest with custom capital settings",
		},
		{
			"backtest -patterns patterns.json -year 2023 -source csv -data-root data",
			"Backtest against locally downloaded CSV history",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}
