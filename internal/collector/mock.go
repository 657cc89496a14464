package collector

import (
	"time"

	"LiquiditySentinel/internal/model"
)

// Mock fetchers return controllable fixed data for development and testing.

type MockMacroFetcher struct {
	Series map[string]model.TimeSeries // keyed by series ID
	Err    error
}

func (m *MockMacroFetcher) Name() string { return "mock" }

func (m *MockMacroFetcher) FetchSeries(seriesID string, _ time.Time) (model.TimeSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series[seriesID], nil
}

type MockMarketFetcher struct {
	Caps map[string]model.TimeSeries // keyed by asset ID
	Errs map[string]error            // per-asset failures
}

func (m *MockMarketFetcher) Name() string { return "mock" }

func (m *MockMarketFetcher) FetchMarketCaps(asset string, _ int) (model.TimeSeries, error) {
	if err := m.Errs[asset]; err != nil {
		return nil, err
	}
	return m.Caps[asset], nil
}

type MockDominanceFetcher struct {
	Dominance float64
	Err       error
}

func (m *MockDominanceFetcher) Name() string { return "mock" }

func (m *MockDominanceFetcher) FetchDominance(string) (float64, error) {
	return m.Dominance, m.Err
}

type MockFlowFetcher struct {
	Flows []model.FlowPoint
	Err   error
}

func (m *MockFlowFetcher) Name() string { return "mock" }

func (m *MockFlowFetcher) FetchFlows() ([]model.FlowPoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Flows, nil
}

type MockSentimentFetcher struct {
	Values []float64
	Err    error
}

func (m *MockSentimentFetcher) Name() string { return "mock" }

func (m *MockSentimentFetcher) FetchIndex(limit int) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Values) > limit {
		return m.Values[len(m.Values)-limit:], nil
	}
	return m.Values, nil
}

type MockPriceFetcher struct {
	Prices map[time.Time]float64
	Err    error
}

func (m *MockPriceFetcher) Name() string { return "mock" }

func (m *MockPriceFetcher) FetchDailyCloses(string, time.Time, time.Time) (map[time.Time]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices, nil
}
