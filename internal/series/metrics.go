package series

import (
	"fmt"
	"math"
	"time"

	"LiquiditySentinel/internal/model"
)

// betaMinSamples is the minimum number of exact-date (x, price) pairs
// required before a regression slope is considered meaningful.
const betaMinSamples = 20

// YoY returns the fractional change of the latest observation against the
// value nearest to one year earlier: (latest - prev) / |prev|.
// A result of 0.1 means +10%.
func YoY(s model.TimeSeries) (float64, error) {
	return ChangeOverDays(s, 365)
}

// ChangeOverDays returns the fractional change of the latest observation
// against the value nearest to `days` days earlier.
func ChangeOverDays(s model.TimeSeries, days int) (float64, error) {
	latest, ok := s.Latest()
	if !ok {
		return 0, fmt.Errorf("change over %dd: empty series: %w", days, ErrIndeterminate)
	}
	idx, _ := nearestIndex(s, latest.Date.AddDate(0, 0, -days))
	if idx == len(s)-1 {
		return 0, fmt.Errorf("change over %dd: no reference point older than the latest: %w",
			days, ErrIndeterminate)
	}
	prev := s[idx].Value
	if prev == 0 {
		return 0, fmt.Errorf("change over %dd: zero reference value: %w", days, ErrIndeterminate)
	}
	return (latest.Value - prev) / math.Abs(prev), nil
}

// ZScore returns how many population standard deviations the last sample
// sits from the mean. Unlike the ratio metrics it never reports
// indeterminate: an empty or flat sample set scores 0.
func ZScore(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	variance := 0.0
	for _, v := range samples {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(samples))
	if variance == 0 {
		return 0
	}
	return (samples[len(samples)-1] - mean) / math.Sqrt(variance)
}

// Beta estimates the regression slope of x against a date-keyed price map
// over the trailing 365 days ending at x's latest date. Pairing is by exact
// calendar day (keys must be midnight UTC, see model.Day); points without a
// price are dropped. Slope = population cov(x, y) / population var(x).
func Beta(x model.TimeSeries, priceByDay map[time.Time]float64) (float64, error) {
	latest, ok := x.Latest()
	if !ok {
		return 0, fmt.Errorf("beta: empty series: %w", ErrIndeterminate)
	}
	end := model.Day(latest.Date)
	start := end.AddDate(0, 0, -365)

	var xs, ys []float64
	for _, p := range x {
		d := model.Day(p.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		price, ok := priceByDay[d]
		if !ok {
			continue
		}
		xs = append(xs, p.Value)
		ys = append(ys, price)
	}
	if len(xs) < betaMinSamples {
		return 0, fmt.Errorf("beta: %d paired samples, need %d: %w",
			len(xs), betaMinSamples, ErrIndeterminate)
	}

	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX float64
	for i := range xs {
		dx := xs[i] - meanX
		cov += dx * (ys[i] - meanY)
		varX += dx * dx
	}
	cov /= n
	varX /= n
	if varX == 0 {
		return 0, fmt.Errorf("beta: zero variance in driving series: %w", ErrIndeterminate)
	}
	return cov / varX, nil
}
