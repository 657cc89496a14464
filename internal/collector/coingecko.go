package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"LiquiditySentinel/internal/model"
)

// CoinGeckoFetcher implements MarketFetcher and DominanceFetcher against the
// CoinGecko public API.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, proxyURL string) *CoinGeckoFetcher {
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) get(path string, dest interface{}) error {
	resp, err := f.Client.Get(f.BaseURL + path)
	if err != nil {
		return fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("coingecko decode: %w", err)
	}
	return nil
}

type marketChart struct {
	MarketCaps [][]float64 `json:"market_caps"`
}

// FetchMarketCaps returns the daily market-cap history for the given asset
// ID over the last `days` days, ascending by time.
func (f *CoinGeckoFetcher) FetchMarketCaps(asset string, days int) (model.TimeSeries, error) {
	var chart marketChart
	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily", asset, days)
	if err := f.get(path, &chart); err != nil {
		return nil, err
	}

	out := make(model.TimeSeries, 0, len(chart.MarketCaps))
	for _, pair := range chart.MarketCaps {
		if len(pair) < 2 {
			continue
		}
		out = append(out, model.TimePoint{
			Date:  time.UnixMilli(int64(pair[0])).UTC(),
			Value: pair[1],
		})
	}
	return out, nil
}

type globalData struct {
	Data struct {
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}

// FetchDominance returns the asset's share of total crypto market cap in
// percent, from the /global endpoint.
func (f *CoinGeckoFetcher) FetchDominance(asset string) (float64, error) {
	var g globalData
	if err := f.get("/global", &g); err != nil {
		return 0, err
	}
	dom, ok := g.Data.MarketCapPercentage[strings.ToLower(asset)]
	if !ok {
		return 0, fmt.Errorf("coingecko: no dominance entry for %q", asset)
	}
	return dom, nil
}
