package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFREDFetchSeries_SkipsSentinelAndMalformedObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("series_id"); got != "WALCL" {
			t.Errorf("expected series_id WALCL, got %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("expected api_key forwarded, got %q", got)
		}
		w.Write([]byte(`{"observations":[
			{"date":"2025-01-01","value":"100.5"},
			{"date":"2025-01-08","value":"."},
			{"date":"2025-01-15","value":""},
			{"date":"not-a-date","value":"7"},
			{"date":"2025-01-22","value":"abc"},
			{"date":"2025-01-29","value":"101.25"}
		]}`))
	}))
	defer srv.Close()

	f := NewFREDFetcher(srv.URL, "test-key", "")
	s, err := f.FetchSeries("WALCL", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 usable observations, got %d", len(s))
	}
	if s[0].Value != 100.5 || s[1].Value != 101.25 {
		t.Errorf("unexpected values: %v, %v", s[0].Value, s[1].Value)
	}
	if !s[0].Date.Before(s[1].Date) {
		t.Error("series not ascending")
	}
}

func TestFREDFetchSeries_HTTPErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewFREDFetcher(srv.URL, "", "")
	if _, err := f.FetchSeries("WALCL", time.Now()); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
