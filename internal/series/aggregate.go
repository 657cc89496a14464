package series

import "fmt"

// ComputeFunc computes one metric over a named source.
type ComputeFunc func(source string) (float64, error)

// AverageOf runs fn over every source and returns the arithmetic mean of the
// results that succeeded. Failed sources are dropped (the compute func is
// expected to log its own failures); a single success is enough. Only when
// every source fails is the aggregate indeterminate.
func AverageOf(sources []string, fn ComputeFunc) (float64, error) {
	sum, n := 0.0, 0
	for _, src := range sources {
		v, err := fn(src)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("all %d sources failed: %w", len(sources), ErrIndeterminate)
	}
	return sum / float64(n), nil
}
