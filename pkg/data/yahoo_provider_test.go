package data

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartPayload(symbol, shortName string, timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"symbol": %q, "shortName": %q},
				"timestamp": [%s],
				"indicators": {
					"quote": [{"close": [%s]}],
					"adjclose": [{"adjclose": [%s]}]
				}
			}],
			"error": null
		}
	}`, symbol, shortName, ts, cl, cl)
}

// TestYahooProvider_History tests parsing a chart response into a
// densified series
func TestYahooProvider_History(t *testing.T) {
	jan2 := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	jan4 := time.Date(2023, time.January, 4, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "GC=F")
		fmt.Fprint(w, chartPayload("GC=F", "Gold",
			[]int64{jan2.Unix(), jan4.Unix()},
			[]string{"1840.5", "1852.0"}))
	}))
	defer server.Close()

	provider := NewYahooProviderWithBaseURL(server.URL)
	series, err := provider.History(context.Background(), "GC=F")

	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())

	price, ok := series.At(jan2)
	require.True(t, ok)
	assert.Equal(t, 1840.5, price)

	// Jan 3 backward-fills from Jan 4.
	filled, ok := series.At(jan2.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.Equal(t, 1852.0, filled)
}

// TestYahooProvider_NullCloses tests that null settlement days are dropped
func TestYahooProvider_NullCloses(t *testing.T) {
	jan2 := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	jan3 := time.Date(2023, time.January, 3, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload("CL=F", "Crude Oil",
			[]int64{jan2.Unix(), jan3.Unix()},
			[]string{"null", "75.5"}))
	}))
	defer server.Close()

	provider := NewYahooProviderWithBaseURL(server.URL)
	series, err := provider.History(context.Background(), "CL=F")

	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
	assert.Equal(t, jan3, series.First())
}

// TestYahooProvider_DisplayNameFromCache tests that History primes the
// name cache so DisplayName needs no second request
func TestYahooProvider_DisplayNameFromCache(t *testing.T) {
	jan2 := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, chartPayload("GC=F", "Gold", []int64{jan2.Unix()}, []string{"1840.5"}))
	}))
	defer server.Close()

	provider := NewYahooProviderWithBaseURL(server.URL)
	_, err := provider.History(context.Background(), "GC=F")
	require.NoError(t, err)

	name, err := provider.DisplayName(context.Background(), "GC=F")
	require.NoError(t, err)
	assert.Equal(t, "Gold", name)
	assert.Equal(t, 1, requests)
}

// TestYahooProvider_NotFound tests the unavailable-instrument sentinel
func TestYahooProvider_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewYahooProviderWithBaseURL(server.URL)
	_, err := provider.History(context.Background(), "NOPE=F")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
