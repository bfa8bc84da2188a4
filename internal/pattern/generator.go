package pattern

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/profitcycles/seasonal-scanner/internal/logger"
	"github.com/profitcycles/seasonal-scanner/internal/monitoring"
	"github.com/profitcycles/seasonal-scanner/pkg/data"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// Horizon bounds a scan: start dates iterate [First, Last] and no window
// may end after Bound.
type Horizon struct {
	First time.Time
	Last  time.Time
	Bound time.Time
}

// CalendarYearHorizon scans every day of a calendar year; windows must
// close within the same year.
func CalendarYearHorizon(year int) Horizon {
	return Horizon{
		First: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Last:  time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Bound: time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// LookAheadHorizon scans a rolling window of the given length starting
// today; windows must close within the look-ahead span.
func LookAheadHorizon(today time.Time, days int) Horizon {
	first := types.Day(today)
	return Horizon{
		First: first,
		Last:  first.AddDate(0, 0, days-1),
		Bound: first.AddDate(0, 0, days),
	}
}

// Generator enumerates candidate windows over a horizon and retains the
// best-scoring consistent pattern per (instrument, start date).
type Generator struct {
	provider data.HistoryProvider
	names    data.MetadataProvider
	eval     *Evaluator
	cfg      Config
	scanLog  *logger.Logger
	status   *monitoring.ScanStatus
}

// NewGenerator wires a generator from its collaborators. names and
// scanLog may be nil; tickers then double as display names and file
// logging is disabled.
func NewGenerator(provider data.HistoryProvider, names data.MetadataProvider, cfg Config, scanLog *logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		names:    names,
		eval:     NewEvaluator(cfg),
		cfg:      cfg,
		scanLog:  scanLog,
	}
}

// SetStatus attaches a progress tracker for the health endpoint.
func (g *Generator) SetStatus(status *monitoring.ScanStatus) {
	g.status = status
}

// Generate scans every instrument across the horizon and returns the
// best pattern per key. A failed or empty fetch skips that instrument
// only; the scan never aborts as a whole.
func (g *Generator) Generate(ctx context.Context, tickers []string, horizon Horizon) map[Key]Pattern {
	var candidates []Pattern

	for _, ticker := range tickers {
		log.Printf("🔍 Processing %s...", ticker)
		if g.status != nil {
			g.status.SetCurrent(ticker)
		}

		series, err := g.provider.History(ctx, ticker)
		if err != nil {
			log.Printf("⚠️  Error processing %s: %v, skipping", ticker, err)
			monitoring.RecordInstrumentSkipped("fetch_error")
			if g.status != nil {
				g.status.MarkSkipped()
			}
			if g.scanLog != nil {
				g.scanLog.Skip(ticker, err.Error())
			}
			continue
		}
		if series.Empty() {
			log.Printf("⚠️  No data found for %s, skipping", ticker)
			monitoring.RecordInstrumentSkipped("no_data")
			if g.status != nil {
				g.status.MarkSkipped()
			}
			if g.scanLog != nil {
				g.scanLog.Skip(ticker, "empty price history")
			}
			continue
		}

		name := g.displayName(ctx, ticker)
		found := g.scanInstrument(series, ticker, name, horizon, &candidates)

		monitoring.RecordInstrumentProcessed()
		if g.status != nil {
			g.status.MarkProcessed()
		}
		if g.scanLog != nil {
			g.scanLog.Info("%s: %d consistent windows", ticker, found)
		}
	}

	// Candidates are reduced in ascending start-date order so that a
	// later candidate replaces an earlier one only on strictly higher
	// average return.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartDate.Before(candidates[j].StartDate)
	})

	best := make(map[Key]Pattern)
	for _, p := range candidates {
		key := p.Key()
		if existing, ok := best[key]; ok {
			if p.AverageReturnPercent > existing.AverageReturnPercent {
				best[key] = p
			}
			continue
		}
		best[key] = p
	}

	return best
}

// scanInstrument walks every (start, duration) window of the horizon for
// one instrument, appending classified windows to candidates. Durations
// are scanned ascending, so the first window ending past the bound ends
// the duration loop for that start date.
func (g *Generator) scanInstrument(series *types.PriceSeries, ticker, name string, horizon Horizon, candidates *[]Pattern) int {
	found := 0

	for start := horizon.First; !start.After(horizon.Last); start = start.AddDate(0, 0, 1) {
		for duration := g.cfg.MinDays; duration <= g.cfg.MaxDays; duration++ {
			end := start.AddDate(0, 0, duration)
			if end.After(horizon.Bound) {
				break
			}

			monitoring.RecordWindowEvaluated()
			class, ok := g.eval.Evaluate(series, start, end)
			if !ok {
				continue
			}

			details := g.eval.YearlyDetails(series, start, end)
			if len(details) == 0 {
				continue
			}

			avgReturn := AverageReturn(details, class.Direction)
			*candidates = append(*candidates, Pattern{
				Ticker:               ticker,
				Name:                 name,
				StartDate:            start,
				EndDate:              end,
				Type:                 class.Direction,
				Ratio:                class.Ratio,
				AverageReturnPercent: avgReturn,
				YearlyDetails:        details,
			})
			monitoring.RecordPatternFound(string(class.Direction))
			if g.scanLog != nil {
				g.scanLog.Pattern(ticker, string(class.Direction), class.Ratio, avgReturn)
			}
			found++
		}
	}

	return found
}

func (g *Generator) displayName(ctx context.Context, ticker string) string {
	if g.names == nil {
		return ticker
	}
	name, err := g.names.DisplayName(ctx, ticker)
	if err != nil || name == "" {
		return ticker
	}
	return name
}
