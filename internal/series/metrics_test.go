package series

import (
	"errors"
	"math"
	"testing"
	"time"

	"LiquiditySentinel/internal/model"
)

func TestYoY_Indeterminate(t *testing.T) {
	cases := map[string]model.TimeSeries{
		"empty":        nil,
		"single point": {{Date: day(2025, 6, 1), Value: 5}},
		"zero reference": {
			{Date: day(2024, 6, 1), Value: 0},
			{Date: day(2025, 6, 1), Value: 5},
		},
		// The only other point is so old that the latest point itself is the
		// nearest match for latest−365d. Comparing the latest value against
		// itself would report a bogus 0% change.
		"reference resolves to latest": {
			{Date: day(2025, 6, 1).AddDate(0, 0, -800), Value: 100},
			{Date: day(2025, 6, 1), Value: 110},
		},
	}
	for name, s := range cases {
		if _, err := YoY(s); !errors.Is(err, ErrIndeterminate) {
			t.Errorf("%s: expected ErrIndeterminate, got %v", name, err)
		}
	}
}

func TestYoY_TenPercent(t *testing.T) {
	latest := day(2025, 6, 1)
	s := model.TimeSeries{
		{Date: latest.AddDate(0, 0, -365), Value: 100},
		{Date: latest, Value: 110},
	}
	got, err := YoY(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.10) > 1e-12 {
		t.Errorf("expected +0.10, got %v", got)
	}
}

func TestYoY_NegativeReferenceUsesAbsoluteValue(t *testing.T) {
	latest := day(2025, 6, 1)
	s := model.TimeSeries{
		{Date: latest.AddDate(0, 0, -365), Value: -100},
		{Date: latest, Value: -50},
	}
	got, err := YoY(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected +0.5 ((−50 − −100)/|−100|), got %v", got)
	}
}

func TestChangeOverDays_90DayWindow(t *testing.T) {
	latest := day(2025, 6, 1)
	s := model.TimeSeries{
		// Far outside the window; must not affect the result.
		{Date: latest.AddDate(0, 0, -400), Value: 1},
		{Date: latest.AddDate(0, 0, -90), Value: 200},
		{Date: latest, Value: 230},
	}
	got, err := ChangeOverDays(s, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.15) > 1e-12 {
		t.Errorf("expected +0.15, got %v", got)
	}
}

func TestChangeOverDays_NearestReferenceWins(t *testing.T) {
	latest := day(2025, 6, 1)
	s := model.TimeSeries{
		{Date: latest.AddDate(0, 0, -93), Value: 100}, // 3 days from ref date
		{Date: latest.AddDate(0, 0, -60), Value: 999}, // 30 days from ref date
		{Date: latest, Value: 150},
	}
	got, err := ChangeOverDays(s, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected reference 100 (closest to latest−90d), got change %v", got)
	}
}

func TestZScore_FallsBackToZero(t *testing.T) {
	if z := ZScore(nil); z != 0 {
		t.Errorf("empty samples: expected 0, got %v", z)
	}
	if z := ZScore([]float64{5, 5, 5, 5}); z != 0 {
		t.Errorf("zero variance: expected 0, got %v", z)
	}
}

func TestZScore_KnownValue(t *testing.T) {
	// mean = 2, population std = sqrt(2/3), last = 3.
	samples := []float64{1, 2, 3}
	want := (3.0 - 2.0) / math.Sqrt(2.0/3.0)
	got := ZScore(samples)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func betaFixture(n int, slope, intercept float64) (model.TimeSeries, map[time.Time]float64) {
	start := day(2025, 1, 1)
	x := make(model.TimeSeries, 0, n)
	prices := make(map[time.Time]float64, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		v := float64(i + 1)
		x = append(x, model.TimePoint{Date: d, Value: v})
		prices[d] = slope*v + intercept
	}
	return x, prices
}

func TestBeta_TooFewPairedSamples(t *testing.T) {
	x, prices := betaFixture(19, 2, 0)
	if _, err := Beta(x, prices); !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("expected ErrIndeterminate for 19 pairs, got %v", err)
	}
}

func TestBeta_PerfectlyLinearPairs(t *testing.T) {
	x, prices := betaFixture(40, 2.5, 1000)
	got, err := Beta(x, prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected slope 2.5, got %v", got)
	}
}

func TestBeta_DropsUnpairedAndOutOfWindowPoints(t *testing.T) {
	x, prices := betaFixture(40, 2.5, 1000)
	// A point far before the trailing year and one without a price: both
	// must be ignored without disturbing the slope.
	x = append(model.TimeSeries{{Date: day(2020, 1, 1), Value: 1e9}}, x...)
	x = append(x, model.TimePoint{Date: day(2025, 2, 15), Value: 1e9})
	delete(prices, day(2025, 2, 15))

	got, err := Beta(x, prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected slope 2.5, got %v", got)
	}
}

func TestBeta_ZeroVariance(t *testing.T) {
	start := day(2025, 1, 1)
	x := make(model.TimeSeries, 0, 30)
	prices := map[time.Time]float64{}
	for i := 0; i < 30; i++ {
		d := start.AddDate(0, 0, i)
		x = append(x, model.TimePoint{Date: d, Value: 42})
		prices[d] = float64(i)
	}
	if _, err := Beta(x, prices); !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("expected ErrIndeterminate for flat driving series, got %v", err)
	}
}
