package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// FearGreedFetcher implements SentimentFetcher against the alternative.me
// Fear & Greed index API.
type FearGreedFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewFearGreedFetcher creates a fetcher with optional proxy support.
func NewFearGreedFetcher(baseURL, proxyURL string) *FearGreedFetcher {
	return &FearGreedFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *FearGreedFetcher) Name() string { return "feargreed" }

type fngResponse struct {
	Data []struct {
		Value string `json:"value"`
	} `json:"data"`
}

// FetchIndex returns the most recent `limit` index readings, oldest first.
// The API serves newest-first strings; unparsable entries are dropped.
func (f *FearGreedFetcher) FetchIndex(limit int) ([]float64, error) {
	u := fmt.Sprintf("%s/fng/?limit=%d&format=json", f.BaseURL, limit)
	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("feargreed fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feargreed read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feargreed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed fngResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("feargreed decode: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("feargreed: no readings returned")
	}

	out := make([]float64, 0, len(parsed.Data))
	for i := len(parsed.Data) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(parsed.Data[i].Value, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
