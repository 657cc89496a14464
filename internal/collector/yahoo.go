package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"LiquiditySentinel/internal/model"
)

// YahooFetcher implements PriceFetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a fetcher with optional proxy support.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses returns one closing price per calendar day over
// [start, end], keyed by midnight UTC. The adjusted close is preferred when
// the API provides it; bars with no price at all (holidays) are skipped.
func (f *YahooFetcher) FetchDailyCloses(ticker string, start, end time.Time) (map[time.Time]float64, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		f.BaseURL, url.PathEscape(ticker),
		model.Day(start).Unix(), model.Day(end).AddDate(0, 0, 1).Unix())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	var closes, adjCloses []interface{}
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	prices := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		var price float64
		if i < len(adjCloses) {
			price = toFloat(adjCloses[i])
		}
		if price == 0 && i < len(closes) {
			price = toFloat(closes[i])
		}
		if price == 0 {
			continue // null bar (holiday etc.)
		}
		prices[model.Day(time.Unix(ts, 0))] = price
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("yahoo: no usable price column for %s", ticker)
	}
	return prices, nil
}
