package collector

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"LiquiditySentinel/internal/model"
)

// MacroFetcher fetches macro time series (balance sheet, RRP, TGA) by
// provider series ID, filtered by a start date.
type MacroFetcher interface {
	FetchSeries(seriesID string, start time.Time) (model.TimeSeries, error)
	Name() string
}

// MarketFetcher fetches daily market capitalization history for a named asset.
type MarketFetcher interface {
	FetchMarketCaps(asset string, days int) (model.TimeSeries, error)
	Name() string
}

// DominanceFetcher fetches an asset's share of total crypto market cap, in
// percent.
type DominanceFetcher interface {
	FetchDominance(asset string) (float64, error)
	Name() string
}

// FlowFetcher fetches per-day spot-ETF flow records. Several records may
// share a date (one per fund).
type FlowFetcher interface {
	FetchFlows() ([]model.FlowPoint, error)
	Name() string
}

// SentimentFetcher fetches the most recent sentiment-index readings, ordered
// oldest first.
type SentimentFetcher interface {
	FetchIndex(limit int) ([]float64, error)
	Name() string
}

// PriceFetcher fetches daily closing prices for a ticker, keyed by midnight
// UTC date.
type PriceFetcher interface {
	FetchDailyCloses(ticker string, start, end time.Time) (map[time.Time]float64, error)
	Name() string
}

// newHTTPClient builds the shared client shape: 30s timeout, optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// toFloat coerces loosely-typed JSON numbers (null, string, int) to float64.
// Unparsable values coerce to 0.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
