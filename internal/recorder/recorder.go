package recorder

// IndicatorEvent is one computed indicator value within a run.
type IndicatorEvent struct {
	Name   string
	Value  float64
	Source string
	Detail string
}

// RunEvent summarizes one full update run.
type RunEvent struct {
	Updated int
	Skipped int
}

// Recorder persists historical indicator values for later analysis.
type Recorder interface {
	RecordIndicator(evt *IndicatorEvent) error
	RecordRun(evt *RunEvent) error
	Close() error
}
