package series

import (
	"errors"
	"fmt"
	"time"

	"LiquiditySentinel/internal/model"
)

// ErrIndeterminate marks a computation with no defined result: an empty
// series, a zero reference value, too few regression samples, or every
// aggregation source failing. It is not a transport error; callers keep the
// previous indicator value and log at warning level.
var ErrIndeterminate = errors.New("indeterminate")

// ValueNear returns the value of the point whose date is closest to target
// by absolute day distance. On a tie the chronologically earlier point wins.
func ValueNear(s model.TimeSeries, target time.Time) (float64, error) {
	idx, ok := nearestIndex(s, target)
	if !ok {
		return 0, fmt.Errorf("value near %s: empty series: %w",
			target.Format("2006-01-02"), ErrIndeterminate)
	}
	return s[idx].Value, nil
}

// nearestIndex returns the index of the point closest to target by absolute
// day distance; the earlier index wins ties. Reports false on an empty
// series.
func nearestIndex(s model.TimeSeries, target time.Time) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	best := 0
	bestDist := dayDistance(s[0].Date, target)
	for i := 1; i < len(s); i++ {
		if d := dayDistance(s[i].Date, target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}

func dayDistance(a, b time.Time) int {
	d := int(model.Day(a).Sub(model.Day(b)) / (24 * time.Hour))
	if d < 0 {
		return -d
	}
	return d
}
