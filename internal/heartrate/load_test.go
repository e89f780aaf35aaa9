package heartrate_test

import (
	"testing"
	"time"

	"github.com/myrjola/pulsecoach/internal/heartrate"
)

func TestTrainingLoad(t *testing.T) {
	tests := []struct {
		name         string
		duration     int
		avgHR        int
		maxHR        int
		restingHR    int
		wantTRIMP    float64
		wantCategory string
	}{
		{name: "easy hour", duration: 60, avgHR: 150, maxHR: 190, restingHR: 60, wantTRIMP: 41.5, wantCategory: "light"},
		{name: "steady ninety minutes", duration: 90, avgHR: 150, maxHR: 190, restingHR: 60, wantTRIMP: 62.3, wantCategory: "moderate"},
		{name: "hard session", duration: 80, avgHR: 170, maxHR: 190, restingHR: 60, wantTRIMP: 67.7, wantCategory: "moderate"},
		{name: "long threshold work", duration: 120, avgHR: 175, maxHR: 190, restingHR: 60, wantTRIMP: 106.2, wantCategory: "hard"},
		{name: "race effort", duration: 180, avgHR: 180, maxHR: 190, restingHR: 60, wantTRIMP: 166.2, wantCategory: "very_hard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heartrate.TrainingLoad(tt.duration, tt.avgHR, tt.maxHR, tt.restingHR)
			if got.TRIMP != tt.wantTRIMP {
				t.Errorf("TRIMP = %v, want %v", got.TRIMP, tt.wantTRIMP)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestLoadFromSamples(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	sample := func(minute, value int, context heartrate.SampleContext) heartrate.Sample {
		return heartrate.Sample{
			Value:     value,
			Context:   context,
			Timestamp: start.Add(time.Duration(minute) * time.Minute),
		}
	}

	// Thirty minutes from first to last reading. The warm-up reading is
	// excluded so the working average is 151 bpm.
	samples := []heartrate.Sample{
		sample(0, 100, heartrate.ContextWarmup),
		sample(5, 150, heartrate.ContextExercise),
		sample(10, 155, heartrate.ContextExercise),
		sample(15, 160, heartrate.ContextExercise),
		sample(20, 155, heartrate.ContextExercise),
		sample(25, 150, heartrate.ContextExercise),
		sample(30, 140, heartrate.ContextRecovery),
	}
	got, err := heartrate.LoadFromSamples(samples, 190, 60)
	if err != nil {
		t.Fatalf("LoadFromSamples() error = %v", err)
	}
	if got.TRIMP != 21.0 {
		t.Errorf("TRIMP = %v, want 21.0", got.TRIMP)
	}
	if got.RelativeIntensityPct != 70 {
		t.Errorf("RelativeIntensityPct = %v, want 70", got.RelativeIntensityPct)
	}
	if got.Category != "light" {
		t.Errorf("Category = %q, want light", got.Category)
	}
}

func TestLoadFromSamplesErrors(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		samples []heartrate.Sample
	}{
		{
			name:    "single sample",
			samples: []heartrate.Sample{{Value: 150, Timestamp: start}},
		},
		{
			name: "implausible reading",
			samples: []heartrate.Sample{
				{Value: 150, Timestamp: start},
				{Value: 300, Timestamp: start.Add(10 * time.Minute)},
			},
		},
		{
			name: "unknown context",
			samples: []heartrate.Sample{
				{Value: 150, Timestamp: start},
				{Value: 150, Context: "nap", Timestamp: start.Add(10 * time.Minute)},
			},
		},
		{
			name: "only resting readings",
			samples: []heartrate.Sample{
				{Value: 65, Context: heartrate.ContextRest, Timestamp: start},
				{Value: 66, Context: heartrate.ContextRest, Timestamp: start.Add(10 * time.Minute)},
			},
		},
		{
			name: "no time span",
			samples: []heartrate.Sample{
				{Value: 150, Timestamp: start},
				{Value: 155, Timestamp: start},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := heartrate.LoadFromSamples(tt.samples, 190, 60); err == nil {
				t.Error("LoadFromSamples() expected an error")
			}
		})
	}
}

func TestTrainingLoadClampsRelativeIntensity(t *testing.T) {
	// Average below resting clamps to zero, above max clamps to one.
	low := heartrate.TrainingLoad(60, 50, 190, 60)
	if low.TRIMP != 0 {
		t.Errorf("TRIMP = %v, want 0", low.TRIMP)
	}
	high := heartrate.TrainingLoad(60, 200, 190, 60)
	if high.RelativeIntensityPct != 100 {
		t.Errorf("RelativeIntensityPct = %v, want 100", high.RelativeIntensityPct)
	}
}
