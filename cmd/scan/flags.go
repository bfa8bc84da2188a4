package main

import (
	"flag"
	"fmt"
	"strings"
)

// ScanFlags holds all command line flags for the scan command
type ScanFlags struct {
	// Universe
	Tickers *string

	// Horizon
	Year          *int
	LookAheadDays *int

	// Scan parameters
	MinDays       *int
	MaxDays       *int
	YearsBack     *int
	NearUnanimous *bool

	// Data source
	Source        *string
	DataRoot      *string
	BybitCategory *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	Details     *bool

	// Publishing
	Firestore *bool

	// Monitoring
	MetricsPort *int

	// Environment
	EnvFile *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewScanFlags creates and registers all scan command line flags
func NewScanFlags() *ScanFlags {
	return &ScanFlags{
		Tickers: flag.String("tickers", "", "Comma-separated instrument list (default: commodity futures universe)"),

		Year:          flag.Int("year", 0, "Calendar year to scan (0 = look-ahead window from today)"),
		LookAheadDays: flag.Int("lookahead", 0, "Look-ahead window in days when no year is given"),

		MinDays:       flag.Int("min-days", 0, "Minimum window duration in days"),
		MaxDays:       flag.Int("max-days", 0, "Maximum window duration in days"),
		YearsBack:     flag.Int("years-back", 0, "Lookback years required for consistency"),
		NearUnanimous: flag.Bool("near-unanimous", false, "Accept one dissenting or missing lookback year"),

		Source:        flag.String("source", "", "Data source (yahoo, csv, bybit)"),
		DataRoot:      flag.String("data-root", "", "Data root directory for the csv source"),
		BybitCategory: flag.String("bybit-category", "", "Bybit market category (spot, linear, inverse)"),

		OutputDir:   flag.String("output", "", "Output directory (default: results/scan_<year>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		Details:     flag.Bool("details", false, "Print the per-year breakdown for each pattern"),

		Firestore: flag.Bool("firestore", false, "Publish patterns to Firestore"),

		MetricsPort: flag.Int("metrics-port", 0, "Serve Prometheus metrics and health on this port (0 = off)"),

		EnvFile: flag.String("env", ".env", "Environment file path"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateScanFlags performs validation on scan flag combinations
func ValidateScanFlags(flags *ScanFlags) error {
	if *flags.MinDays < 0 || *flags.MaxDays < 0 {
		return fmt.Errorf("window durations must be non-negative")
	}
	if *flags.MinDays > 0 && *flags.MaxDays > 0 && *flags.MinDays > *flags.MaxDays {
		return fmt.Errorf("min-days (%d) must not exceed max-days (%d)", *flags.MinDays, *flags.MaxDays)
	}
	if *flags.YearsBack < 0 {
		return fmt.Errorf("years-back must be non-negative")
	}
	if *flags.Year < 0 {
		return fmt.Errorf("year must be non-negative")
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

// PrintScanUsageExamples prints usage examples for the scan command
func PrintScanUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"scan -year 2027",
			"Scan the default futures universe across calendar year 2027",
		},
		{
			"scan -lookahead 365",
			"Scan the next 365 days starting today",
		},
		{
			"scan -tickers GC=F,CL=F -year 2027 -near-unanimous",
			"Scan gold and crude oil, accepting one dissenting year",
		},
		{
			"scan -source csv -data-root data -year 2027",
			"Scan against locally downloaded CSV history",
		},
		{
			"scan -source bybit -tickers BTCUSDT,ETHUSDT -lookahead 180",
			"Scan Bybit spot pairs over the next six months",
		},
		{
			"scan -year 2027 -firestore",
			"Scan and publish the results to Firestore",
		},
		{
			"scan -year 2027 -metrics-port 9090",
			"Scan with Prometheus metrics exposed on :9090",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}
