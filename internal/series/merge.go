package series

import (
	"sort"
	"time"

	"LiquiditySentinel/internal/model"
)

// CombineFunc folds the per-date values of three sources into one composite
// value. Arguments arrive in the same order the sources were passed to Merge.
type CombineFunc func(a, b, c float64) float64

// Merge builds a composite series over the union of all dates present in any
// source. Each source is sampled with nearest-date lookup so series released
// at different cadences (daily vs weekly) still line up; an empty source
// contributes zero. The result is ascending by date.
func Merge(a, b, c model.TimeSeries, combine CombineFunc) model.TimeSeries {
	seen := map[time.Time]struct{}{}
	for _, src := range []model.TimeSeries{a, b, c} {
		for _, p := range src {
			seen[model.Day(p.Date)] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make(model.TimeSeries, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.TimePoint{
			Date:  d,
			Value: combine(nearOrZero(a, d), nearOrZero(b, d), nearOrZero(c, d)),
		})
	}
	return out
}

func nearOrZero(s model.TimeSeries, target time.Time) float64 {
	v, err := ValueNear(s, target)
	if err != nil {
		return 0
	}
	return v
}
