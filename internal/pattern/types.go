package pattern

import (
	"time"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// Direction labels the consistent side of a seasonal window.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
)

// Strictness selects the classification policy. Exactly one policy is
// active per run; mixing them within a scan is not supported.
type Strictness int

const (
	// Strict requires every lookback year to agree in direction.
	Strict Strictness = iota
	// NearUnanimous additionally accepts one dissenting or missing year.
	NearUnanimous
)

// Default scan parameters, overridable through flags and environment.
const (
	DefaultMinDays       = 20
	DefaultMaxDays       = 60
	DefaultYearsBack     = 10
	DefaultLookAheadDays = 365
)

// Config holds the scan parameters shared by the evaluator and generator.
// Passed by value; there is no process-wide state.
type Config struct {
	MinDays    int
	MaxDays    int
	YearsBack  int
	Strictness Strictness
}

// DefaultConfig returns the standard scan configuration.
func DefaultConfig() Config {
	return Config{
		MinDays:    DefaultMinDays,
		MaxDays:    DefaultMaxDays,
		YearsBack:  DefaultYearsBack,
		Strictness: Strict,
	}
}

// Classification is the outcome of evaluating a candidate window.
type Classification struct {
	Ratio     string
	Direction Direction
}

// YearlyDetail captures one lookback year's realized statistics for a
// classified window.
type YearlyDetail struct {
	Year           int
	StartDate      time.Time
	EndDate        time.Time
	StartPrice     float64
	EndPrice       float64
	Profit         float64
	ProfitPercent  float64
	MaxRisePercent float64
	MaxDropPercent float64
}

// Pattern is a calendar window that moved consistently in one direction
// across the configured lookback years. Immutable once created.
type Pattern struct {
	Ticker               string
	Name                 string
	StartDate            time.Time
	EndDate              time.Time
	Type                 Direction
	Ratio                string
	AverageReturnPercent float64
	YearlyDetails        []YearlyDetail
}

// Key identifies a pattern by instrument and calendar start date.
// Two candidates sharing a key compete on average return.
type Key struct {
	Ticker    string
	StartDate string
}

// Key returns the dedup key for this pattern.
func (p Pattern) Key() Key {
	return Key{Ticker: p.Ticker, StartDate: types.DateKey(p.StartDate)}
}
