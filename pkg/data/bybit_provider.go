package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

const (
	bybitKlineLimit    = 1000
	bybitDailyInterval = "D"
)

// BybitProvider loads daily kline history from the Bybit v5 market API.
// Market endpoints are public, so no credentials are required.
type BybitProvider struct {
	httpClient *bybit_api.Client
	category   string
}

// NewBybitProvider creates a Bybit data provider for the given market
// category ("spot", "linear", "inverse").
func NewBybitProvider(category string) *BybitProvider {
	if category == "" {
		category = "spot"
	}
	return &BybitProvider{
		httpClient: bybit_api.NewBybitHttpClient("", "", bybit_api.WithBaseURL(bybit_api.MAINNET)),
		category:   category,
	}
}

// GetName returns the name of the data provider
func (p *BybitProvider) GetName() string {
	return "Bybit Provider"
}

// History fetches the full daily close history for a symbol, paging
// backward from the most recent kline until the listing start.
func (p *BybitProvider) History(ctx context.Context, ticker string) (*types.PriceSeries, error) {
	var bars []types.Bar
	seen := make(map[int64]bool)

	var end *time.Time
	for {
		klines, err := p.fetchKlines(ctx, ticker, end)
		if err != nil {
			return nil, err
		}
		if len(klines) == 0 {
			break
		}

		earliest := klines[0].start
		added := 0
		for _, k := range klines {
			if seen[k.start.UnixMilli()] {
				continue
			}
			seen[k.start.UnixMilli()] = true
			bars = append(bars, types.Bar{Date: k.start, AdjClose: k.close})
			added++
			if k.start.Before(earliest) {
				earliest = k.start
			}
		}

		if added == 0 || len(klines) < bybitKlineLimit {
			break
		}
		prev := earliest.Add(-24 * time.Hour)
		end = &prev
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrDataUnavailable)
	}

	return types.NewPriceSeries(ticker, bars), nil
}

type bybitKline struct {
	start time.Time
	close float64
}

func (p *BybitProvider) fetchKlines(ctx context.Context, symbol string, end *time.Time) ([]bybitKline, error) {
	params := map[string]interface{}{
		"category": p.category,
		"symbol":   symbol,
		"interval": bybitDailyInterval,
		"limit":    bybitKlineLimit,
	}
	if end != nil {
		params["end"] = end.UnixMilli()
	}

	result, err := p.httpClient.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get klines for %s: %w", symbol, err)
	}

	return parseKlineResponse(result)
}

// parseKlineResponse parses the API response into daily klines
func parseKlineResponse(response interface{}) ([]bybitKline, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}

	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}

	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	var klines []bybitKline
	for _, item := range klineResult.List {
		if len(item) < 5 {
			continue // Skip incomplete data
		}

		// Bybit kline format: [startTime, openPrice, highPrice, lowPrice, closePrice, ...]
		startMs, err := strconv.ParseInt(item[0], 10, 64)
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(item[4], 64)
		if err != nil {
			continue
		}

		klines = append(klines, bybitKline{
			start: time.UnixMilli(startMs).UTC(),
			close: closePrice,
		})
	}

	return klines, nil
}
