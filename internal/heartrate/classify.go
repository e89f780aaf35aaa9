package heartrate

import "fmt"

// Outcome is the result bucket of classifying a heart rate against a zone
// table. Every heart rate in the supported range maps to exactly one outcome.
type Outcome string

const (
	OutcomeBelowRange Outcome = "below_range"
	OutcomeZone1      Outcome = "zone_1"
	OutcomeZone2      Outcome = "zone_2"
	OutcomeZone3      Outcome = "zone_3"
	OutcomeZone4      Outcome = "zone_4"
	OutcomeZone5      Outcome = "zone_5"
	OutcomeAboveRange Outcome = "above_range"
)

// ErrHeartRateOutOfRange rejects readings no human heart produces.
var ErrHeartRateOutOfRange = fmt.Errorf("heart rate must be between 0 and 300 bpm")

// ZoneResult describes where a heart rate falls relative to the zone table.
type ZoneResult struct {
	Outcome     Outcome `json:"outcome"`
	CurrentHR   int     `json:"current_hr"`
	Zone        *Zone   `json:"zone,omitempty"`
	Description string  `json:"description"`
	Hint        string  `json:"hint,omitempty"`
	Dangerous   bool    `json:"dangerous"`
}

// ClassifyHR maps a heart rate onto the zone table. Bounds are inclusive on
// both ends and the lowest matching zone wins when bounds touch.
func ClassifyHR(currentHR int, table ZoneTable) (ZoneResult, error) {
	if currentHR < 0 || currentHR > 300 {
		return ZoneResult{}, ErrHeartRateOutOfRange
	}

	if len(table.Zones) > 0 && currentHR < table.Zones[0].LowerBpm {
		return ZoneResult{
			Outcome:     OutcomeBelowRange,
			CurrentHR:   currentHR,
			Description: "Below the training zones.",
			Hint:        "Increase intensity gradually to reach zone 1.",
		}, nil
	}

	for i := range table.Zones {
		zone := table.Zones[i]
		if currentHR >= zone.LowerBpm && currentHR <= zone.UpperBpm {
			return ZoneResult{
				Outcome:     Outcome(fmt.Sprintf("zone_%d", zone.Number)),
				CurrentHR:   currentHR,
				Zone:        &zone,
				Description: fmt.Sprintf("Zone %d (%s): %s", zone.Number, zone.Name, zone.Description),
			}, nil
		}
	}

	return ZoneResult{
		Outcome:     OutcomeAboveRange,
		CurrentHR:   currentHR,
		Description: "Above the maximum heart rate. This is dangerous.",
		Hint:        "Stop exercising and let the heart rate come down.",
		Dangerous:   true,
	}, nil
}
