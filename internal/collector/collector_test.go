package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LiquiditySentinel/internal/model"
)

func TestSoSoValueFetchFlows_CoercesFlowTypes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[
			{"date":"2025-06-01","flow":125.5},
			{"date":"2025-06-01","flow":"250.5"},
			{"date":"2025-06-02","flow":null},
			{"date":"bad-date","flow":10}
		]}}`))
	}))
	defer srv.Close()

	f := NewSoSoValueFetcher(srv.URL, "")
	flows, err := f.FetchFlows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flows) != 3 {
		t.Fatalf("expected 3 records (bad date dropped), got %d", len(flows))
	}
	if flows[0].Flow != 125.5 || flows[1].Flow != 250.5 {
		t.Errorf("numeric and string flows should both parse: %v, %v", flows[0].Flow, flows[1].Flow)
	}
	if flows[2].Flow != 0 {
		t.Errorf("null flow should read as zero, got %v", flows[2].Flow)
	}
}

func TestCoinGeckoFetchDominance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/global" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"market_cap_percentage":{"btc":55.1,"usdt":4.832}}}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	dom, err := f.FetchDominance("USDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dom != 4.832 {
		t.Errorf("expected 4.832, got %v", dom)
	}
	if _, err := f.FetchDominance("doge"); err == nil {
		t.Error("expected an error for an asset without a dominance entry")
	}
}

func TestCoinGeckoFetchMarketCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"market_caps":[[1735689600000,100.0],[1735776000000,110.0]]}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	caps, err := f.FetchMarketCaps("tether", 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(caps) != 2 {
		t.Fatalf("expected 2 points, got %d", len(caps))
	}
	if got := model.Day(caps[0].Date); !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp not converted to UTC day: %s", got)
	}
}

func TestFearGreedFetchIndex_OldestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// API serves newest first.
		w.Write([]byte(`{"data":[{"value":"73"},{"value":"60"},{"value":"44"}]}`))
	}))
	defer srv.Close()

	f := NewFearGreedFetcher(srv.URL, "")
	values, err := f.FetchIndex(90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{44, 60, 73}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], values[i])
		}
	}
}

func TestYahooFetchDailyCloses_PrefersAdjustedClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1735689600,1735776000,1735862400],
			"indicators":{
				"quote":[{"close":[100.0,101.0,null]}],
				"adjclose":[{"adjclose":[99.5,null,null]}]
			}
		}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	prices, err := f.FetchDailyCloses("BTC-USD",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 prices (null bar dropped), got %d", len(prices))
	}
	d1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if prices[d1] != 99.5 {
		t.Errorf("expected adjusted close 99.5 to win, got %v", prices[d1])
	}
	if prices[d2] != 101.0 {
		t.Errorf("expected close fallback 101.0, got %v", prices[d2])
	}
}

func TestYahooFetchDailyCloses_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":{"code":"Not Found","description":"no data"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	if _, err := f.FetchDailyCloses("NOPE", time.Now().AddDate(0, 0, -5), time.Now()); err == nil {
		t.Fatal("expected an error for a chart API error")
	}
}
