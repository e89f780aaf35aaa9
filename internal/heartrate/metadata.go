package heartrate

// Intensity labels the effort level of a zone or exercise.
type Intensity string

const (
	IntensityVeryLow  Intensity = "very_low"
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityMaximum  Intensity = "maximum"
)

// HighIntensity reports whether the intensity caps continuous work at short
// efforts. Zones four and five qualify.
func (i Intensity) HighIntensity() bool {
	return i == IntensityHigh || i == IntensityMaximum
}

type zoneInfo struct {
	name        string
	description string
	intensity   Intensity
	benefits    []string
	rpeLow      int
	rpeHigh     int
	duration    string
	suggestions []string
}

// zoneMetadata holds the static descriptions for zones one through five.
var zoneMetadata = [5]zoneInfo{
	{
		name:        "Recovery",
		description: "Very light effort for warm-up, cool-down, and active recovery.",
		intensity:   IntensityVeryLow,
		benefits:    []string{"promotes recovery", "improves basic endurance", "burns fat as fuel"},
		rpeLow:      3,
		rpeHigh:     4,
		duration:    "20-60 minutes",
		suggestions: []string{"easy walking", "light cycling", "gentle stretching"},
	},
	{
		name:        "Aerobic Base",
		description: "Comfortable steady effort that builds the aerobic engine.",
		intensity:   IntensityLow,
		benefits:    []string{"builds aerobic base", "improves fat metabolism", "strengthens the heart"},
		rpeLow:      4,
		rpeHigh:     6,
		duration:    "30-90 minutes",
		suggestions: []string{"brisk walking", "easy jogging", "steady cycling", "swimming"},
	},
	{
		name:        "Aerobic Intense",
		description: "Moderately hard effort that raises aerobic capacity.",
		intensity:   IntensityModerate,
		benefits:    []string{"improves aerobic capacity", "raises lactate tolerance", "increases stroke volume"},
		rpeLow:      6,
		rpeHigh:     7,
		duration:    "20-60 minutes",
		suggestions: []string{"tempo running", "fast cycling", "rowing"},
	},
	{
		name:        "Anaerobic Threshold",
		description: "Hard effort around the lactate threshold.",
		intensity:   IntensityHigh,
		benefits:    []string{"raises anaerobic threshold", "improves speed endurance", "builds mental toughness"},
		rpeLow:      7,
		rpeHigh:     9,
		duration:    "10-40 minutes (intervals)",
		suggestions: []string{"threshold intervals", "hill repeats", "fast group rides"},
	},
	{
		name:        "VO2max",
		description: "Maximal effort sustainable only in short bursts.",
		intensity:   IntensityMaximum,
		benefits:    []string{"raises maximal oxygen uptake", "improves sprint power", "maximal cardiac output"},
		rpeLow:      9,
		rpeHigh:     10,
		duration:    "2-15 minutes (intervals)",
		suggestions: []string{"short sprints", "VO2max intervals", "all-out efforts"},
	},
}

// ExerciseSuggestions returns activity ideas appropriate for the zone.
func (z Zone) ExerciseSuggestions() []string {
	if z.Number < 1 || z.Number > len(zoneMetadata) {
		return nil
	}
	return zoneMetadata[z.Number-1].suggestions
}

// DurationFeedback compares time already spent in the zone against its
// recommended dose and nudges the user accordingly.
func (z Zone) DurationFeedback(minutesInZone int) string {
	switch {
	case z.Number >= 4 && minutesInZone > 40:
		return "You have been at high intensity for a long time. Switch to recovery."
	case z.Number == 5 && minutesInZone > 15:
		return "Maximum-effort work should stay short. Take a recovery break."
	case minutesInZone < 5:
		return "Keep going, you are just getting started in this zone."
	default:
		return "Good work, this is a sustainable dose for the zone."
	}
}
