package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// CSVColumnMapping defines the column positions for daily history files
type CSVColumnMapping struct {
	DateCol     int
	AdjCloseCol int
	MinColumns  int
	DateFormat  string
}

// DefaultCSVFormat matches the files written by the download script:
// Date,AdjClose with YYYY-MM-DD dates.
var DefaultCSVFormat = CSVColumnMapping{
	DateCol:     0,
	AdjCloseCol: 1,
	MinColumns:  2,
	DateFormat:  "2006-01-02",
}

// YahooExportCSVFormat matches full Yahoo CSV exports:
// Date,Open,High,Low,Close,Adj Close,Volume.
var YahooExportCSVFormat = CSVColumnMapping{
	DateCol:     0,
	AdjCloseCol: 5,
	MinColumns:  7,
	DateFormat:  "2006-01-02",
}

// CSVProvider implements HistoryProvider for local CSV files
type CSVProvider struct {
	dataRoot string
	format   CSVColumnMapping
}

// NewCSVProvider creates a new CSV data provider with default format
func NewCSVProvider(dataRoot string) *CSVProvider {
	return &CSVProvider{
		dataRoot: dataRoot,
		format:   DefaultCSVFormat,
	}
}

// NewCSVProviderWithFormat creates a new CSV data provider with custom format
func NewCSVProviderWithFormat(dataRoot string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{
		dataRoot: dataRoot,
		format:   format,
	}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// History loads the daily history for a ticker from its CSV file under
// the data root.
func (p *CSVProvider) History(_ context.Context, ticker string) (*types.PriceSeries, error) {
	filename := FindDataFile(p.dataRoot, ticker)

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s (%s): %w", ticker, filename, ErrDataUnavailable)
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	var bars []types.Bar

	lineNum := 1 // Start from 1 since we already read header
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, p.format.MinColumns, len(record))
			continue
		}

		date, err := time.Parse(p.format.DateFormat, record[p.format.DateCol])
		if err != nil {
			log.Printf("⚠️ Invalid date '%s' at line %d, skipping: %v", record[p.format.DateCol], lineNum, err)
			continue
		}

		// Yahoo exports write "null" for sessions without a settlement.
		raw := record[p.format.AdjCloseCol]
		if raw == "" || raw == "null" {
			continue
		}

		adjClose, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("⚠️ Invalid adjusted close '%s' at line %d, skipping: %v", raw, lineNum, err)
			continue
		}

		if adjClose <= 0 {
			log.Printf("⚠️ Non-positive price at line %d, skipping", lineNum)
			continue
		}

		bars = append(bars, types.Bar{Date: date, AdjClose: adjClose})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%s (%s): %w", ticker, filename, ErrDataUnavailable)
	}

	return types.NewPriceSeries(ticker, bars), nil
}
