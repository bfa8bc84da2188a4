package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/profitcycles/seasonal-scanner/internal/backtest"
	"github.com/profitcycles/seasonal-scanner/internal/config"
	"github.com/profitcycles/seasonal-scanner/internal/logger"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/data"
	"github.com/profitcycles/seasonal-scanner/pkg/reporting"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

const (
	AppName    = "Seasonal Backtest"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewBacktestFlags()
	flag.Parse()

	if err := ValidateBacktestFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	printHeader()

	loadEnvironment(*flags.EnvFile)
	cfg := config.Load()

	targetYear := *flags.Year
	if targetYear == 0 {
		targetYear = time.Now().Year()
	}

	provider := buildProvider(flags, cfg)
	log.Printf("📊 Backtesting against %d via %s", targetYear, provider.GetName())

	ctx := context.Background()

	patterns, err := loadPatterns(ctx, flags, cfg, provider, targetYear)
	if err != nil {
		log.Fatalf("❌ Could not load patterns: %v", err)
	}
	if len(patterns) == 0 {
		log.Fatalf("❌ No patterns to backtest")
	}
	log.Printf("🔍 Replaying %d patterns", len(patterns))

	seriesByTicker := fetchSeries(ctx, provider, patterns)

	capital := *flags.InitialCapital
	if capital == 0 {
		capital = cfg.Backtest.InitialCapital
	}
	stake := *flags.TradeStake
	if stake == 0 {
		stake = cfg.Backtest.TradeStake
	}

	engine := backtest.NewEngine(capital, stake)
	results := engine.Run(patterns, seriesByTicker, targetYear)

	reporting.PrintBacktestResults(results)

	if !*flags.ConsoleOnly {
		writeOutputs(flags, results, targetYear)
	}

	log.Printf("✅ Backtest complete: %d counted trades", results.TradeCount)
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Seasonal Pattern Backtesting\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))
	PrintBacktestUsageExamples()
	fmt.Printf("\nRun with -h for the full flag reference.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func buildProvider(flags *BacktestFlags, cfg *config.Config) data.HistoryProvider {
	source := *flags.Source
	if source == "" {
		source = cfg.Data.Source
	}

	switch source {
	case "csv":
		dataRoot := *flags.DataRoot
		if dataRoot == "" {
			dataRoot = cfg.Data.DataRoot
		}
		return data.NewCachedProvider(data.NewCSVProvider(dataRoot))
	case "bybit":
		category := *flags.BybitCategory
		if category == "" {
			category = cfg.Data.BybitCategory
		}
		return data.NewCachedProvider(data.NewBybitProvider(category))
	default:
		return data.NewCachedProvider(data.NewYahooProvider())
	}
}

// loadPatterns reads the saved pattern file, or rescans the year before
// the target when none is given.
func loadPatterns(ctx context.Context, flags *BacktestFlags, cfg *config.Config, provider data.HistoryProvider, targetYear int) ([]pattern.Pattern, error) {
	if *flags.Patterns != "" {
		return reporting.LoadBestPatterns(*flags.Patterns)
	}

	scanYear := targetYear - 1
	log.Printf("🔍 No pattern file given, scanning %d first...", scanYear)

	scanCfg := pattern.Config{
		MinDays:   intOr(*flags.MinDays, cfg.Scan.MinDays),
		MaxDays:   intOr(*flags.MaxDays, cfg.Scan.MaxDays),
		YearsBack: intOr(*flags.YearsBack, cfg.Scan.YearsBack),
	}
	if *flags.NearUnanimous || cfg.Scan.NearUnanimous {
		scanCfg.Strictness = pattern.NearUnanimous
	}

	tickers := SplitTickers(*flags.Tickers)
	if len(tickers) == 0 {
		tickers = data.DefaultFuturesTickers
	}

	scanLog, err := logger.NewLogger(fmt.Sprintf("backtest_scan_%d", scanYear))
	if err != nil {
		log.Printf("⚠️  Could not open scan log: %v", err)
		scanLog = nil
	} else {
		defer scanLog.Close()
	}

	gen := pattern.NewGenerator(provider, data.DefaultFuturesNames, scanCfg, scanLog)
	best := gen.Generate(ctx, tickers, pattern.CalendarYearHorizon(scanYear))

	candidates := make([]pattern.Pattern, 0, len(best))
	for _, p := range best {
		candidates = append(candidates, p)
	}
	return pattern.Filter(candidates), nil
}

// fetchSeries loads the price history for every instrument the pattern
// set references. A failed fetch logs and skips; the engine then skips
// that instrument's patterns.
func fetchSeries(ctx context.Context, provider data.HistoryProvider, patterns []pattern.Pattern) map[string]*types.PriceSeries {
	tickers := make(map[string]bool)
	for _, p := range patterns {
		tickers[p.Ticker] = true
	}

	ordered := make([]string, 0, len(tickers))
	for t := range tickers {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	series := make(map[string]*types.PriceSeries, len(ordered))
	for _, ticker := range ordered {
		s, err := provider.History(ctx, ticker)
		if err != nil {
			log.Printf("⚠️  Error fetching %s: %v, skipping its patterns", ticker, err)
			continue
		}
		series[ticker] = s
	}
	return series
}

func writeOutputs(flags *BacktestFlags, results *backtest.Results, targetYear int) {
	outputDir := *flags.OutputDir
	if outputDir == "" {
		outputDir = reporting.DefaultOutputDir("backtest", targetYear)
	}

	jsonPath := filepath.Join(outputDir, "backtest.json")
	if err := reporting.SaveBacktestResults(results, jsonPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", jsonPath, err)
	} else {
		log.Printf("💾 Results saved to %s", jsonPath)
	}

	csvPath := filepath.Join(outputDir, "trades.csv")
	if err := reporting.WriteBacktestCSV(results, csvPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", csvPath, err)
	} else {
		log.Printf("💾 CSV saved to %s", csvPath)
	}

	xlsxPath := filepath.Join(outputDir, "backtest.xlsx")
	if err := reporting.WriteBacktestXLSX(results, xlsxPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", xlsxPath, err)
	} else {
		log.Printf("💾 Workbook saved to %s", xlsxPath)
	}
}

func intOr(flagVal, cfgVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	return cfgVal
}
