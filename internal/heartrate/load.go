package heartrate

import (
	"fmt"
	"math"
)

// LoadSummary quantifies a single session as a training load score so that
// sessions of different kinds can be compared and accumulated over a week.
type LoadSummary struct {
	TRIMP                  float64 `json:"trimp"`
	Category               string  `json:"category"`
	RelativeIntensityPct   float64 `json:"relative_intensity_pct"`
	RecoveryRecommendation string  `json:"recovery_recommendation"`
}

// TrainingLoad scores a session with the Banister TRIMP model: duration
// weighted by the fraction of heart-rate reserve used.
func TrainingLoad(durationMinutes, avgHR, maxHR, restingHR int) LoadSummary {
	reserve := maxHR - restingHR
	relative := 0.0
	if reserve > 0 {
		relative = float64(avgHR-restingHR) / float64(reserve)
	}
	if relative < 0 {
		relative = 0
	}
	if relative > 1 {
		relative = 1
	}

	trimp := float64(durationMinutes) * relative
	summary := LoadSummary{
		TRIMP:                math.Round(trimp*10) / 10,
		RelativeIntensityPct: math.Round(relative*1000) / 10,
	}

	switch {
	case trimp < 50:
		summary.Category = "light"
		summary.RecoveryRecommendation = "Light session. You can train again tomorrow."
	case trimp < 100:
		summary.Category = "moderate"
		summary.RecoveryRecommendation = "Moderate session. Favor easy work tomorrow."
	case trimp < 150:
		summary.Category = "hard"
		summary.RecoveryRecommendation = "Hard session. Take an easy day before the next hard one."
	default:
		summary.Category = "very_hard"
		summary.RecoveryRecommendation = "Very hard session. Plan one or two recovery days."
	}
	return summary
}

// LoadFromSamples scores a session recorded as individual heart-rate
// readings. The session length comes from the first and last timestamps and
// rest and warm-up readings are excluded from the working average.
func LoadFromSamples(samples []Sample, maxHR, restingHR int) (LoadSummary, error) {
	if len(samples) < 2 {
		return LoadSummary{}, fmt.Errorf("need at least two samples, got %d", len(samples))
	}

	first, last := samples[0].Timestamp, samples[0].Timestamp
	sum, count := 0, 0
	for i, sample := range samples {
		if err := sample.Validate(); err != nil {
			return LoadSummary{}, fmt.Errorf("sample %d: %w", i, err)
		}
		if sample.Timestamp.Before(first) {
			first = sample.Timestamp
		}
		if sample.Timestamp.After(last) {
			last = sample.Timestamp
		}
		if sample.Context == ContextRest || sample.Context == ContextWarmup {
			continue
		}
		sum += sample.Value
		count++
	}
	if count == 0 {
		return LoadSummary{}, fmt.Errorf("no working samples among %d readings", len(samples))
	}

	durationMinutes := int(math.Round(last.Sub(first).Minutes()))
	if durationMinutes <= 0 {
		return LoadSummary{}, fmt.Errorf("sample series spans no time")
	}
	return TrainingLoad(durationMinutes, sum/count, maxHR, restingHR), nil
}
