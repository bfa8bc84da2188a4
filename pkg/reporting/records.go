package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/profitcycles/seasonal-scanner/internal/pattern"
	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// YearlyDetailRecord is the serialized form of one lookback year.
type YearlyDetailRecord struct {
	Year           int     `json:"year" firestore:"year"`
	StartDate      string  `json:"start_date" firestore:"start_date"`
	EndDate        string  `json:"end_date" firestore:"end_date"`
	StartPrice     float64 `json:"start_price" firestore:"start_price"`
	EndPrice       float64 `json:"end_price" firestore:"end_price"`
	ProfitPercent  float64 `json:"profit_percent" firestore:"profit_percent"`
	MaxRisePercent float64 `json:"max_rise_percent" firestore:"max_rise_percent"`
	MaxDropPercent float64 `json:"max_drop_percent" firestore:"max_drop_percent"`
}

// PatternRecord is the serialized form of a pattern: dates as
// YYYY-MM-DD strings, money values rounded to two decimals. In-memory
// patterns stay unrounded; rounding happens only here.
type PatternRecord struct {
	Ticker               string               `json:"ticker" firestore:"ticker"`
	Name                 string               `json:"name" firestore:"name"`
	StartDate            string               `json:"start_date" firestore:"start_date"`
	EndDate              string               `json:"end_date" firestore:"end_date"`
	Type                 string               `json:"type" firestore:"type"`
	Ratio                string               `json:"ratio" firestore:"ratio"`
	AverageReturnPercent float64              `json:"average_return_percent" firestore:"average_return_percent"`
	YearlyDetails        []YearlyDetailRecord `json:"yearly_details" firestore:"yearly_details"`
}

// Round2 rounds to two decimal places for serialized output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewPatternRecord converts a pattern into its serialized form.
func NewPatternRecord(p pattern.Pattern) PatternRecord {
	details := make([]YearlyDetailRecord, 0, len(p.YearlyDetails))
	for _, d := range p.YearlyDetails {
		details = append(details, YearlyDetailRecord{
			Year:           d.Year,
			StartDate:      types.DateKey(d.StartDate),
			EndDate:        types.DateKey(d.EndDate),
			StartPrice:     Round2(d.StartPrice),
			EndPrice:       Round2(d.EndPrice),
			ProfitPercent:  Round2(d.ProfitPercent),
			MaxRisePercent: Round2(d.MaxRisePercent),
			MaxDropPercent: Round2(d.MaxDropPercent),
		})
	}

	return PatternRecord{
		Ticker:               p.Ticker,
		Name:                 p.Name,
		StartDate:            types.DateKey(p.StartDate),
		EndDate:              types.DateKey(p.EndDate),
		Type:                 string(p.Type),
		Ratio:                p.Ratio,
		AverageReturnPercent: Round2(p.AverageReturnPercent),
		YearlyDetails:        details,
	}
}

// ToPattern converts a serialized record back to an in-memory pattern.
func (r PatternRecord) ToPattern() (pattern.Pattern, error) {
	start, err := time.Parse(types.DateKeyFormat, r.StartDate)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("invalid start_date %q: %w", r.StartDate, err)
	}
	end, err := time.Parse(types.DateKeyFormat, r.EndDate)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("invalid end_date %q: %w", r.EndDate, err)
	}

	details := make([]pattern.YearlyDetail, 0, len(r.YearlyDetails))
	for _, d := range r.YearlyDetails {
		ds, err := time.Parse(types.DateKeyFormat, d.StartDate)
		if err != nil {
			return pattern.Pattern{}, fmt.Errorf("invalid yearly start_date %q: %w", d.StartDate, err)
		}
		de, err := time.Parse(types.DateKeyFormat, d.EndDate)
		if err != nil {
			return pattern.Pattern{}, fmt.Errorf("invalid yearly end_date %q: %w", d.EndDate, err)
		}
		details = append(details, pattern.YearlyDetail{
			Year:           d.Year,
			StartDate:      ds,
			EndDate:        de,
			StartPrice:     d.StartPrice,
			EndPrice:       d.EndPrice,
			Profit:         d.EndPrice - d.StartPrice,
			ProfitPercent:  d.ProfitPercent,
			MaxRisePercent: d.MaxRisePercent,
			MaxDropPercent: d.MaxDropPercent,
		})
	}

	return pattern.Pattern{
		Ticker:               r.Ticker,
		Name:                 r.Name,
		StartDate:            start,
		EndDate:              end,
		Type:                 pattern.Direction(r.Type),
		Ratio:                r.Ratio,
		AverageReturnPercent: r.AverageReturnPercent,
		YearlyDetails:        details,
	}, nil
}

// SortPatterns orders patterns by ticker, then start date. All writers
// share this ordering so every output format agrees.
func SortPatterns(patterns []pattern.Pattern) []pattern.Pattern {
	ordered := make([]pattern.Pattern, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Ticker != ordered[j].Ticker {
			return ordered[i].Ticker < ordered[j].Ticker
		}
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})
	return ordered
}

// SaveBestPatterns writes the pattern set to a JSON file, ordered by
// ticker and start date.
func SaveBestPatterns(patterns []pattern.Pattern, path string) error {
	records := make([]PatternRecord, 0, len(patterns))
	for _, p := range SortPatterns(patterns) {
		records = append(records, NewPatternRecord(p))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// LoadBestPatterns reads a pattern set previously written by
// SaveBestPatterns.
func LoadBestPatterns(path string) ([]pattern.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []PatternRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patterns from %s: %w", path, err)
	}

	patterns := make([]pattern.Pattern, 0, len(records))
	for _, r := range records {
		p, err := r.ToPattern()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
