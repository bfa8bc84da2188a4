package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/profitcycles/seasonal-scanner/pkg/types"
)

const (
	yahooChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
	yahooHTTPLimits = 30 * time.Second
)

// YahooProvider loads daily adjusted-close history from the Yahoo
// Finance chart API. It also resolves instrument display names, which
// ride along on the same response.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string

	nameMu sync.RWMutex
	names  map[string]string
}

// NewYahooProvider creates a Yahoo Finance data provider.
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		httpClient: &http.Client{Timeout: yahooHTTPLimits},
		baseURL:    yahooChartURL,
		names:      make(map[string]string),
	}
}

// NewYahooProviderWithBaseURL creates a provider against a custom
// endpoint. Used by tests.
func NewYahooProviderWithBaseURL(baseURL string) *YahooProvider {
	p := NewYahooProvider()
	p.baseURL = baseURL
	return p
}

// GetName returns the name of the data provider
func (p *YahooProvider) GetName() string {
	return "Yahoo Finance Provider"
}

// chartResponse mirrors the slice of the Yahoo chart payload we need.
// Adjusted closes arrive as pointers because the API emits null for
// days without a settlement price.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				ShortName string `json:"shortName"`
				LongName  string `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches the full daily history for a ticker.
func (p *YahooProvider) History(ctx context.Context, ticker string) (*types.PriceSeries, error) {
	resp, err := p.fetchChart(ctx, ticker)
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	p.cacheName(ticker, result.Meta.ShortName, result.Meta.LongName)

	adjCloses := result.Indicators.Quote[0].Close
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]types.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(adjCloses) || adjCloses[i] == nil {
			continue
		}
		bars = append(bars, types.Bar{
			Date:     time.Unix(ts, 0).UTC(),
			AdjClose: *adjCloses[i],
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrDataUnavailable)
	}

	return types.NewPriceSeries(ticker, bars), nil
}

// DisplayName returns the instrument's short name, fetching the chart
// metadata if it has not been seen yet.
func (p *YahooProvider) DisplayName(ctx context.Context, ticker string) (string, error) {
	p.nameMu.RLock()
	name, ok := p.names[ticker]
	p.nameMu.RUnlock()
	if ok {
		return name, nil
	}

	resp, err := p.fetchChart(ctx, ticker)
	if err != nil {
		return "", err
	}

	meta := resp.Chart.Result[0].Meta
	p.cacheName(ticker, meta.ShortName, meta.LongName)
	if meta.ShortName != "" {
		return meta.ShortName, nil
	}
	if meta.LongName != "" {
		return meta.LongName, nil
	}
	return ticker, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, ticker string) (*chartResponse, error) {
	endpoint := fmt.Sprintf("%s/%s?range=max&interval=1d&events=div%%2Csplit", p.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request failed for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", ticker, ErrDataUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s returned status %d", ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart response: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s (%s)", ticker, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrDataUnavailable)
	}

	return &chart, nil
}

func (p *YahooProvider) cacheName(ticker, short, long string) {
	name := short
	if name == "" {
		name = long
	}
	if name == "" {
		return
	}
	p.nameMu.Lock()
	p.names[ticker] = name
	p.nameMu.Unlock()
}
