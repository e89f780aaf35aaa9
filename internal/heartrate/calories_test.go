package heartrate_test

import (
	"testing"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

func TestMETValue(t *testing.T) {
	tests := []struct {
		name      string
		activity  string
		intensity heartrate.Intensity
		want      float64
	}{
		{name: "running high", activity: "running", intensity: heartrate.IntensityHigh, want: 11},
		{name: "running maximum uses the high column", activity: "running", intensity: heartrate.IntensityMaximum, want: 11},
		{name: "walking very low uses the low column", activity: "walking", intensity: heartrate.IntensityVeryLow, want: 2.5},
		{name: "cycling moderate", activity: "cycling", intensity: heartrate.IntensityModerate, want: 6.8},
		{name: "unknown activity falls back", activity: "juggling", intensity: heartrate.IntensityModerate, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heartrate.METValue(tt.activity, tt.intensity); got != tt.want {
				t.Errorf("METValue(%q, %s) = %v, want %v", tt.activity, tt.intensity, got, tt.want)
			}
		})
	}
}

func TestEstimateMET(t *testing.T) {
	got := heartrate.EstimateMET("running", heartrate.IntensityHigh, 70, 30)

	if got.Mode != heartrate.ModeMET {
		t.Errorf("Mode = %s, want met", got.Mode)
	}
	if got.METValue != 11 {
		t.Errorf("METValue = %v, want 11", got.METValue)
	}
	// 11 MET * 70 kg * 0.5 h = 385 kcal.
	if got.Calories != 385 {
		t.Errorf("Calories = %d, want 385", got.Calories)
	}
	if got.CaloriesPerMinute != 12.8 {
		t.Errorf("CaloriesPerMinute = %v, want 12.8", got.CaloriesPerMinute)
	}
}

func TestEstimateMETNeverZero(t *testing.T) {
	got := heartrate.EstimateMET("yoga", heartrate.IntensityVeryLow, 40, 0)
	if got.Calories < 1 {
		t.Errorf("Calories = %d, want at least 1", got.Calories)
	}
}

func TestEstimateFromHeartRate(t *testing.T) {
	tests := []struct {
		name            string
		avgHR           int
		weightKg        float64
		age             int
		gender          profile.Gender
		durationMinutes int
		wantCalories    int
		wantPerMinute   float64
	}{
		{
			name: "male", avgHR: 140, weightKg: 70, age: 30, gender: profile.GenderMale,
			durationMinutes: 30, wantCalories: 381, wantPerMinute: 12.7,
		},
		{
			name: "female", avgHR: 140, weightKg: 60, age: 30, gender: profile.GenderFemale,
			durationMinutes: 45, wantCalories: 396, wantPerMinute: 8.8,
		},
		{
			name: "unknown gender uses the male coefficients", avgHR: 140, weightKg: 70, age: 30,
			gender: profile.GenderUnknown, durationMinutes: 30, wantCalories: 381, wantPerMinute: 12.7,
		},
		{
			name: "regression floored at 3 kcal per minute", avgHR: 60, weightKg: 70, age: 30,
			gender: profile.GenderMale, durationMinutes: 10, wantCalories: 30, wantPerMinute: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heartrate.EstimateFromHeartRate(tt.avgHR, tt.weightKg, tt.age, tt.gender, tt.durationMinutes)
			if got.Mode != heartrate.ModeHeartRate {
				t.Errorf("Mode = %s, want heart_rate", got.Mode)
			}
			if got.Calories != tt.wantCalories {
				t.Errorf("Calories = %d, want %d", got.Calories, tt.wantCalories)
			}
			if got.CaloriesPerMinute != tt.wantPerMinute {
				t.Errorf("CaloriesPerMinute = %v, want %v", got.CaloriesPerMinute, tt.wantPerMinute)
			}
		})
	}
}
