package heartrate_test

import (
	"testing"

	"github.com/myrjola/pulsecoach/internal/heartrate"
)

func TestZoneExerciseSuggestions(t *testing.T) {
	table, err := heartrate.CalculateZones(28, 65, heartrate.FormulaTanaka, heartrate.MethodKarvonen)
	if err != nil {
		t.Fatalf("CalculateZones() error = %v", err)
	}
	for _, zone := range table.Zones {
		if len(zone.ExerciseSuggestions()) == 0 {
			t.Errorf("zone %d has no exercise suggestions", zone.Number)
		}
	}

	var unknown heartrate.Zone
	if got := unknown.ExerciseSuggestions(); got != nil {
		t.Errorf("ExerciseSuggestions() = %v for zone 0, want nil", got)
	}
}

func TestZoneDurationFeedback(t *testing.T) {
	table, err := heartrate.CalculateZones(28, 65, heartrate.FormulaTanaka, heartrate.MethodKarvonen)
	if err != nil {
		t.Fatalf("CalculateZones() error = %v", err)
	}
	tests := []struct {
		name    string
		zone    int
		minutes int
		want    string
	}{
		{name: "just started", zone: 2, minutes: 2, want: "Keep going, you are just getting started in this zone."},
		{name: "sustainable dose", zone: 2, minutes: 30, want: "Good work, this is a sustainable dose for the zone."},
		{name: "too long at threshold", zone: 4, minutes: 45, want: "You have been at high intensity for a long time. Switch to recovery."},
		{name: "too long at maximum", zone: 5, minutes: 20, want: "Maximum-effort work should stay short. Take a recovery break."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Zones[tt.zone-1].DurationFeedback(tt.minutes)
			if got != tt.want {
				t.Errorf("DurationFeedback(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}
