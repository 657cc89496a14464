package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"LiquiditySentinel/internal/model"
)

// SoSoValueFetcher implements FlowFetcher against the SoSoValue spot-BTC ETF
// flow API.
type SoSoValueFetcher struct {
	URL    string
	Client *http.Client
}

// NewSoSoValueFetcher creates a fetcher with optional proxy support.
func NewSoSoValueFetcher(endpoint, proxyURL string) *SoSoValueFetcher {
	return &SoSoValueFetcher{
		URL:    endpoint,
		Client: newHTTPClient(proxyURL),
	}
}

func (f *SoSoValueFetcher) Name() string { return "sosovalue" }

type sosoResponse struct {
	Data struct {
		Items []struct {
			Date string      `json:"date"`
			Flow interface{} `json:"flow"`
		} `json:"items"`
	} `json:"data"`
}

// FetchFlows returns per-fund daily flow records. Items without a parsable
// date are dropped; missing or malformed flow values read as zero, matching
// how the feed reports funds with no activity.
func (f *SoSoValueFetcher) FetchFlows() ([]model.FlowPoint, error) {
	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("sosovalue fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sosovalue read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sosovalue: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed sosoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("sosovalue decode: %w", err)
	}
	if len(parsed.Data.Items) == 0 {
		return nil, fmt.Errorf("sosovalue: no flow items returned")
	}

	out := make([]model.FlowPoint, 0, len(parsed.Data.Items))
	for _, item := range parsed.Data.Items {
		d, err := time.ParseInLocation("2006-01-02", item.Date, time.UTC)
		if err != nil {
			continue
		}
		out = append(out, model.FlowPoint{Date: d, Flow: toFloat(item.Flow)})
	}
	return out, nil
}
