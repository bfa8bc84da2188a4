// Command download_daily_history fetches full daily adjusted-close
// history for a set of tickers and writes one CSV per instrument under
// the data root, in the Date,AdjClose format the csv source expects.
//
// Usage:
//
//	go run scripts/download_daily_history.go -data-root data -tickers GC=F,CL=F
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

var defaultTickers = []string{
	"GC=F", "SI=F", "PL=F", "HG=F", "CL=F", "HO=F", "RB=F",
	"NG=F", "ZC=F", "ZW=F", "ZS=F", "ZM=F", "ZL=F",
}

func main() {
	dataRoot := flag.String("data-root", "data", "Directory to write CSV files into")
	tickersFlag := flag.String("tickers", "", "Comma-separated tickers (default: commodity futures universe)")
	flag.Parse()

	tickers := defaultTickers
	if *tickersFlag != "" {
		tickers = nil
		for _, t := range strings.Split(*tickersFlag, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, strings.ToUpper(t))
			}
		}
	}

	if err := os.MkdirAll(*dataRoot, 0755); err != nil {
		log.Fatalf("❌ Could not create %s: %v", *dataRoot, err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	failed := 0
	for _, ticker := range tickers {
		log.Printf("🔄 Downloading %s...", ticker)
		if err := download(client, *dataRoot, ticker); err != nil {
			log.Printf("❌ %s: %v", ticker, err)
			failed++
			continue
		}
	}

	if failed > 0 {
		log.Printf("⚠️  %d of %d downloads failed", failed, len(tickers))
		os.Exit(1)
	}
	log.Printf("✅ Downloaded %d instruments to %s", len(tickers), *dataRoot)
}

func download(client *http.Client, dataRoot, ticker string) error {
	endpoint := fmt.Sprintf("%s/%s?range=max&interval=1d", chartURL, url.PathEscape(ticker))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var chart struct {
		Chart struct {
			Result []struct {
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
		} `json:"chart"`
	}
	if err := json.Unmarshal(body, &chart); err != nil {
		return err
	}
	if len(chart.Chart.Result) == 0 {
		return fmt.Errorf("empty chart result")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return fmt.Errorf("no quote data")
	}
	closes := result.Indicators.Quote[0].Close
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		closes = result.Indicators.AdjClose[0].AdjClose
	}

	safe := strings.NewReplacer("=", "_", "/", "_", "^", "").Replace(ticker)
	path := filepath.Join(dataRoot, safe+".csv")

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"Date", "AdjClose"}); err != nil {
		return err
	}

	rows := 0
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		date := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if err := w.Write([]string{date, fmt.Sprintf("%.6f", *closes[i])}); err != nil {
			return err
		}
		rows++
	}

	log.Printf("💾 %s: %d rows → %s", ticker, rows, path)
	return w.Error()
}
