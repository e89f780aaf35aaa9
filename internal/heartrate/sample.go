package heartrate

import (
	"fmt"
	"time"
)

// SampleContext tells what the user was doing when the reading was taken.
type SampleContext string

const (
	ContextRest     SampleContext = "rest"
	ContextWarmup   SampleContext = "warmup"
	ContextExercise SampleContext = "exercise"
	ContextRecovery SampleContext = "recovery"
)

var validSampleContexts = map[SampleContext]bool{
	ContextRest:     true,
	ContextWarmup:   true,
	ContextExercise: true,
	ContextRecovery: true,
}

// Sample is a single heart-rate reading from a monitor or manual entry.
type Sample struct {
	Value     int           `json:"value"`
	Context   SampleContext `json:"context"`
	Timestamp time.Time     `json:"timestamp"`
}

// Validate rejects readings outside the physiologically plausible 40 to 250
// bpm window and unknown contexts.
func (s Sample) Validate() error {
	const (
		minValue = 40
		maxValue = 250
	)
	if s.Value < minValue || s.Value > maxValue {
		return fmt.Errorf("heart rate %d is outside the plausible range %d-%d bpm", s.Value, minValue, maxValue)
	}
	if s.Context != "" && !validSampleContexts[s.Context] {
		return fmt.Errorf("unknown sample context %q", s.Context)
	}
	return nil
}
