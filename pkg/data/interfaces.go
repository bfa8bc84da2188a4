package data

import (
	"context"
	"errors"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

// ErrDataUnavailable signals that a provider has no history for the
// requested instrument. Callers skip the instrument and move on.
var ErrDataUnavailable = errors.New("no price history available")

// HistoryProvider interface for loading daily price history from
// various sources
type HistoryProvider interface {
	// History loads the full daily adjusted-close history for a ticker
	History(ctx context.Context, ticker string) (*types.PriceSeries, error)

	// GetName returns the name of the data provider
	GetName() string
}

// MetadataProvider resolves human-readable instrument names
type MetadataProvider interface {
	// DisplayName returns the display name for a ticker
	DisplayName(ctx context.Context, ticker string) (string, error)
}

// SeriesCache interface for caching loaded price series
type SeriesCache interface {
	// Get retrieves a series from cache if available
	Get(ticker string) (*types.PriceSeries, bool)

	// Set stores a series in cache
	Set(ticker string, series *types.PriceSeries)

	// Clear removes all cached series
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// DefaultFuturesTickers is the commodity futures universe scanned when
// no instrument list is given.
var DefaultFuturesTickers = []string{
	"GC=F", // Gold
	"SI=F", // Silver
	"PL=F", // Platinum
	"HG=F", // Copper
	"CL=F", // Crude Oil
	"HO=F", // Heating Oil
	"RB=F", // RBOB Gasoline
	"NG=F", // Natural Gas
	"ZC=F", // Corn
	"ZW=F", // Wheat
	"ZS=F", // Soybeans
	"ZM=F", // Soybean Meal
	"ZL=F", // Soybean Oil
}

// StaticNames is a MetadataProvider backed by a fixed ticker-to-name
// map. Unknown tickers resolve to themselves.
type StaticNames map[string]string

// DefaultFuturesNames maps the default futures universe to display names.
var DefaultFuturesNames = StaticNames{
	"GC=F": "Gold",
	"SI=F": "Silver",
	"PL=F": "Platinum",
	"HG=F": "Copper",
	"CL=F": "Crude Oil",
	"HO=F": "Heating Oil",
	"RB=F": "RBOB Gasoline",
	"NG=F": "Natural Gas",
	"ZC=F": "Corn",
	"ZW=F": "Wheat",
	"ZS=F": "Soybeans",
	"ZM=F": "Soybean Meal",
	"ZL=F": "Soybean Oil",
}

// DisplayName returns the mapped name, or the ticker itself when unmapped.
func (n StaticNames) DisplayName(_ context.Context, ticker string) (string, error) {
	if name, ok := n[ticker]; ok {
		return name, nil
	}
	return ticker, nil
}
