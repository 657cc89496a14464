package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"LiquiditySentinel/internal/model"
)

// FREDFetcher implements MacroFetcher against the St. Louis Fed observations
// API. The API key is optional: without one requests still work but may be
// rate-limited.
type FREDFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFREDFetcher creates a fetcher with optional API key and proxy support.
func NewFREDFetcher(baseURL, apiKey, proxyURL string) *FREDFetcher {
	return &FREDFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *FREDFetcher) Name() string { return "fred" }

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchSeries returns the observations for seriesID from start onwards,
// ascending by date. FRED marks missing observations with "." (or an empty
// value); those are skipped rather than read as zero, as is any single
// observation that fails to parse.
func (f *FREDFetcher) FetchSeries(seriesID string, start time.Time) (model.TimeSeries, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("file_type", "json")
	params.Set("observation_start", start.Format("2006-01-02"))
	if f.APIKey != "" {
		params.Set("api_key", f.APIKey)
	}

	resp, err := f.Client.Get(f.BaseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fred read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred %s: status %d, body: %s", seriesID, resp.StatusCode, string(body))
	}

	var parsed fredResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("fred decode %s: %w", seriesID, err)
	}

	out := make(model.TimeSeries, 0, len(parsed.Observations))
	for _, obs := range parsed.Observations {
		if obs.Value == "" || obs.Value == "." {
			continue // no observation published for that date
		}
		d, err := time.ParseInLocation("2006-01-02", obs.Date, time.UTC)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		out = append(out, model.TimePoint{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
