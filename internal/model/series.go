package model

import "time"

// TimePoint is a single dated observation.
type TimePoint struct {
	Date  time.Time
	Value float64
}

// TimeSeries holds observations sorted ascending by date, without duplicate
// dates. Callers construct it already sorted; the last element is the most
// recent observation.
type TimeSeries []TimePoint

// Latest returns the most recent point.
func (s TimeSeries) Latest() (TimePoint, bool) {
	if len(s) == 0 {
		return TimePoint{}, false
	}
	return s[len(s)-1], true
}

// FlowPoint is a single dated fund-flow record. Several records may share a
// date and must be summed per day before use.
type FlowPoint struct {
	Date time.Time
	Flow float64
}

// Day truncates t to midnight UTC so observations from providers with
// different time-of-day conventions compare by calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
