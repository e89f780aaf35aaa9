// Package heartrate implements the training-zone, safety, and calorie
// calculations. Everything in this package is a pure function over validated
// inputs; persistence and transport live elsewhere.
package heartrate

import (
	"math"

	"github.com/myrjola/pulsecoach/internal/errors"
)

// Formula selects the estimation formula for maximum heart rate. The source
// literature disagrees on which one is canonical, so the choice is an explicit
// policy with Tanaka as the default.
type Formula string

const (
	// FormulaTanaka is 208 - 0.7*age (Tanaka et al. 2001).
	FormulaTanaka Formula = "tanaka"
	// FormulaClassic is the traditional 220 - age.
	FormulaClassic Formula = "classic"
	// FormulaNes is 211 - 0.64*age, calibrated on active populations.
	FormulaNes Formula = "nes"
)

// DefaultFormula is used whenever the caller does not pick one.
const DefaultFormula = FormulaTanaka

// MaxHR estimates the maximum heart rate for the given age. Unknown formulas
// fall back to Tanaka.
func (f Formula) MaxHR(age int) int {
	switch f {
	case FormulaClassic:
		return 220 - age
	case FormulaNes:
		return int(math.Round(211 - 0.64*float64(age)))
	case FormulaTanaka:
		return int(math.Round(208 - 0.7*float64(age)))
	default:
		return int(math.Round(208 - 0.7*float64(age)))
	}
}

// BoundMethod selects how zone bounds are derived from the physiology.
type BoundMethod string

const (
	// MethodKarvonen anchors the bands on heart-rate reserve.
	MethodKarvonen BoundMethod = "karvonen"
	// MethodPercentOfMax uses plain percentages of the maximum heart rate.
	MethodPercentOfMax BoundMethod = "percent_of_max"
)

// Validation failures for zone calculation. Surfaced verbatim to callers.
var (
	ErrInvalidAge       = errors.NewSentinel("age must be between 13 and 100 years")
	ErrInvalidRestingHR = errors.NewSentinel("resting heart rate must be between 30 and 120 bpm")
)

// Zone is one of the five training bands.
type Zone struct {
	Number                int      `json:"number"`
	Name                  string   `json:"name"`
	LowerBpm              int      `json:"lower_bpm"`
	UpperBpm              int      `json:"upper_bpm"`
	PercentLow            int      `json:"percent_low"`
	PercentHigh           int      `json:"percent_high"`
	Intensity             Intensity `json:"intensity"`
	Description           string   `json:"description"`
	Benefits              []string `json:"benefits"`
	PerceivedExertionLow  int      `json:"perceived_exertion_low"`
	PerceivedExertionHigh int      `json:"perceived_exertion_high"`
	DurationGuidance      string   `json:"duration_guidance"`
}

// ZoneTable is the ordered five-band table for one person. Bounds are
// contiguous: each zone's upper equals the next zone's lower, and zone five
// tops out at the maximum heart rate.
type ZoneTable struct {
	Age       int         `json:"age"`
	RestingHR int         `json:"resting_hr"`
	MaxHR     int         `json:"max_hr"`
	Reserve   int         `json:"hr_reserve"`
	Formula   Formula     `json:"formula"`
	Method    BoundMethod `json:"method"`
	Zones     []Zone      `json:"zones"`
}

// percentBands are the fixed intensity bands shared by both bound methods.
var percentBands = [5][2]int{
	{50, 60},
	{60, 70},
	{70, 80},
	{80, 90},
	{90, 100},
}

// CalculateZones computes the five-band zone table.
//
// Bounds round half away from zero the same way the reference tables do,
// except that zone five's upper bound is pinned to the maximum heart rate.
func CalculateZones(age, restingHR int, formula Formula, method BoundMethod) (ZoneTable, error) {
	const (
		minAge     = 13
		maxAge     = 100
		minResting = 30
		maxResting = 120
	)
	if age < minAge || age > maxAge {
		return ZoneTable{}, ErrInvalidAge
	}
	if restingHR < minResting || restingHR > maxResting {
		return ZoneTable{}, ErrInvalidRestingHR
	}

	maxHR := formula.MaxHR(age)
	reserve := maxHR - restingHR

	zones := make([]Zone, 0, len(percentBands))
	for i, band := range percentBands {
		var lower, upper int
		switch method {
		case MethodPercentOfMax:
			lower = int(math.Round(float64(maxHR) * float64(band[0]) / 100))
			upper = int(math.Round(float64(maxHR) * float64(band[1]) / 100))
		default: // Karvonen
			lower = restingHR + int(math.Round(float64(reserve)*float64(band[0])/100))
			upper = restingHR + int(math.Round(float64(reserve)*float64(band[1])/100))
		}
		if i == len(percentBands)-1 {
			upper = maxHR
		}

		meta := zoneMetadata[i]
		zones = append(zones, Zone{
			Number:                i + 1,
			Name:                  meta.name,
			LowerBpm:              lower,
			UpperBpm:              upper,
			PercentLow:            band[0],
			PercentHigh:           band[1],
			Intensity:             meta.intensity,
			Description:           meta.description,
			Benefits:              meta.benefits,
			PerceivedExertionLow:  meta.rpeLow,
			PerceivedExertionHigh: meta.rpeHigh,
			DurationGuidance:      meta.duration,
		})
	}

	return ZoneTable{
		Age:       age,
		RestingHR: restingHR,
		MaxHR:     maxHR,
		Reserve:   reserve,
		Formula:   formula,
		Method:    method,
		Zones:     zones,
	}, nil
}
