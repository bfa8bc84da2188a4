package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/profitcycles/seasonal-scanner/internal/config"
	"github.com/profitcycles/seasonal-scanner/internal/logger"
	"github.com/profitcycles/seasonal-scanner/internal/monitoring"
	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/data"
	"github.com/profitcycles/seasonal-scanner/pkg/reporting"
)

const (
	AppName    = "Seasonal Scan"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewScanFlags()
	flag.Parse()

	if err := ValidateScanFlags(flags); err != nil {
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

	scanCfg := resolveScanConfig(flags, cfg)

	tickers := SplitTickers(*flags.Tickers)
	if len(tickers) == 0 {
		tickers = data.DefaultFuturesTickers
	}

	horizon, label := resolveHorizon(flags, cfg)

	provider, names := buildProvider(flags, cfg)
	log.Printf("📊 Scanning %d instruments via %s", len(tickers), provider.GetName())

	scanLog, err := logger.NewLogger(fmt.Sprintf("scan_%d", label))
	if err != nil {
		log.Printf("⚠️  Could not open scan log: %v", err)
		scanLog = nil
	} else {
		defer scanLog.Close()
	}

	gen := pattern.NewGenerator(provider, names, scanCfg, scanLog)

	if port := intOr(*flags.MetricsPort, cfg.Monitoring.MetricsPort); port > 0 {
		status := monitoring.NewScanStatus()
		monitoring.Serve(port, status)
		gen.SetStatus(status)
		log.Printf("📡 Metrics available on :%d/metrics", port)
	}

	ctx := context.Background()
	best := gen.Generate(ctx, tickers, horizon)

	candidates := make([]pattern.Pattern, 0, len(best))
	for _, p := range best {
		candidates = append(candidates, p)
	}
	patterns := pattern.Filter(candidates)

	reporting.PrintPatterns(patterns)
	if *flags.Details {
		reporter := reporting.NewDefaultConsoleReporter()
		for _, p := range reporting.SortPatterns(patterns) {
			reporter.PrintYearlyDetails(p)
		}
	}

	if !*flags.ConsoleOnly {
		writeOutputs(flags, patterns, label)
	}

	if *flags.Firestore {
		publishToFirestore(ctx, cfg, patterns)
	}

	log.Printf("✅ Scan complete: %d patterns", len(patterns))
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Seasonal Calendar Pattern Scanner\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))
	PrintScanUsageExamples()
	fmt.Printf("\nRun with -h for the full flag reference.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// resolveScanConfig merges flags over environment config. Flags win
// when explicitly set; zero values fall through to the environment.
func resolveScanConfig(flags *ScanFlags, cfg *config.Config) pattern.Config {
	scanCfg := pattern.Config{
		MinDays:   intOr(*flags.MinDays, cfg.Scan.MinDays),
		MaxDays:   intOr(*flags.MaxDays, cfg.Scan.MaxDays),
		YearsBack: intOr(*flags.YearsBack, cfg.Scan.YearsBack),
	}
	if *flags.NearUnanimous || cfg.Scan.NearUnanimous {
		scanCfg.Strictness = pattern.NearUnanimous
	}
	return scanCfg
}

func resolveHorizon(flags *ScanFlags, cfg *config.Config) (pattern.Horizon, int) {
	if *flags.Year > 0 {
		return pattern.CalendarYearHorizon(*flags.Year), *flags.Year
	}

	lookahead := intOr(*flags.LookAheadDays, cfg.Scan.LookAheadDays)
	now := time.Now()
	return pattern.LookAheadHorizon(now, lookahead), now.Year()
}

func buildProvider(flags *ScanFlags, cfg *config.Config) (data.HistoryProvider, data.MetadataProvider) {
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
		return data.NewCachedProvider(data.NewCSVProvider(dataRoot)), data.DefaultFuturesNames
	case "bybit":
		category := *flags.BybitCategory
		if category == "" {
			category = cfg.Data.BybitCategory
		}
		return data.NewCachedProvider(data.NewBybitProvider(category)), nil
	default:
		yahoo := data.NewYahooProvider()
		return data.NewCachedProvider(yahoo), yahoo
	}
}

func writeOutputs(flags *ScanFlags, patterns []pattern.Pattern, year int) {
	outputDir := *flags.OutputDir
	if outputDir == "" {
		outputDir = reporting.DefaultOutputDir("scan", year)
	}

	jsonPath := filepath.Join(outputDir, "best_patterns.json")
	if err := reporting.SaveBestPatterns(patterns, jsonPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", jsonPath, err)
	} else {
		log.Printf("💾 Patterns saved to %s", jsonPath)
	}

	csvPath := filepath.Join(outputDir, "patterns.csv")
	if err := reporting.WritePatternsCSV(patterns, csvPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", csvPath, err)
	} else {
		log.Printf("💾 CSV saved to %s", csvPath)
	}

	xlsxPath := filepath.Join(outputDir, "patterns.xlsx")
	if err := reporting.WritePatternsXLSX(patterns, xlsxPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", xlsxPath, err)
	} else {
		log.Printf("💾 Workbook saved to %s", xlsxPath)
	}
}

func publishToFirestore(ctx context.Context, cfg *config.Config, patterns []pattern.Pattern) {
	sink, err := reporting.NewFirestoreSink(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection)
	if err != nil {
		log.Printf("❌ Firestore unavailable: %v", err)
		return
	}
	defer sink.Close()

	if err := sink.Publish(ctx, patterns); err != nil {
		log.Printf("❌ Firestore publish failed: %v", err)
	}
}

func intOr(flagVal, cfgVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	return cfgVal
}
