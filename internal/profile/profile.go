// Package profile defines the physiological user profile consumed by the
// heart-rate and workout engines. Profiles are validated at construction so
// that invalid data never reaches the engine.
package profile

import (
	"fmt"
	"time"
)

// FitnessLevel describes the user's conditioning.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// HealthCondition is a diagnosed condition that constrains exercise choice
// and heart-rate limits.
type HealthCondition string

const (
	ConditionDiabetes     HealthCondition = "diabetes"
	ConditionHypertension HealthCondition = "hypertension"
	ConditionHeartDisease HealthCondition = "heart_disease"
	ConditionAsthma       HealthCondition = "asthma"
	ConditionArthritis    HealthCondition = "arthritis"
	ConditionPregnancy    HealthCondition = "pregnancy"
)

// ExercisePreference is an exercise type the user enjoys. Preferred types
// score higher during session selection.
type ExercisePreference string

const (
	PreferenceCardio      ExercisePreference = "cardio"
	PreferenceStrength    ExercisePreference = "strength"
	PreferenceFlexibility ExercisePreference = "flexibility"
	PreferenceSports      ExercisePreference = "sports"
	PreferenceYoga        ExercisePreference = "yoga"
	PreferenceSwimming    ExercisePreference = "swimming"
	PreferenceCycling     ExercisePreference = "cycling"
	PreferenceRunning     ExercisePreference = "running"
)

// Gender is used only by the heart-rate calorie regression, which has
// different coefficients per gender. Empty means unknown.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = ""
)

// Profile is a validated physiology profile.
type Profile struct {
	ID               int64
	DisplayName      string
	Age              int
	WeightKg         float64
	HeightM          float64
	Gender           Gender
	FitnessLevel     FitnessLevel
	RestingHeartRate *int
	HealthConditions []HealthCondition
	Preferences      []ExercisePreference
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidationError reports a caller-correctable field error. It is surfaced
// verbatim and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validFitnessLevels = map[FitnessLevel]bool{
	LevelBeginner:     true,
	LevelIntermediate: true,
	LevelAdvanced:     true,
}

var validConditions = map[HealthCondition]bool{
	ConditionDiabetes:     true,
	ConditionHypertension: true,
	ConditionHeartDisease: true,
	ConditionAsthma:       true,
	ConditionArthritis:    true,
	ConditionPregnancy:    true,
}

var validPreferences = map[ExercisePreference]bool{
	PreferenceCardio:      true,
	PreferenceStrength:    true,
	PreferenceFlexibility: true,
	PreferenceSports:      true,
	PreferenceYoga:        true,
	PreferenceSwimming:    true,
	PreferenceCycling:     true,
	PreferenceRunning:     true,
}

// Validate checks all profile fields and returns the first violation as a
// *ValidationError.
func (p *Profile) Validate() error {
	const (
		minAge      = 13
		maxAge      = 120
		maxWeightKg = 500
		minHeightM  = 0.5
		maxHeightM  = 2.5
		minResting  = 30
		maxResting  = 120
	)

	if p.Age < minAge || p.Age > maxAge {
		return &ValidationError{Field: "age", Reason: fmt.Sprintf("must be between %d and %d years", minAge, maxAge)}
	}
	if p.WeightKg <= 0 || p.WeightKg > maxWeightKg {
		return &ValidationError{Field: "weight", Reason: fmt.Sprintf("must be between 0 and %d kg", maxWeightKg)}
	}
	if p.HeightM < minHeightM || p.HeightM > maxHeightM {
		return &ValidationError{Field: "height", Reason: fmt.Sprintf("must be between %.1f and %.1f m", minHeightM, maxHeightM)}
	}
	if !validFitnessLevels[p.FitnessLevel] {
		return &ValidationError{Field: "fitness_level", Reason: fmt.Sprintf("unknown level %q", p.FitnessLevel)}
	}
	if p.RestingHeartRate != nil && (*p.RestingHeartRate < minResting || *p.RestingHeartRate > maxResting) {
		return &ValidationError{Field: "resting_heart_rate",
			Reason: fmt.Sprintf("must be between %d and %d bpm", minResting, maxResting)}
	}
	if p.Gender != GenderUnknown && p.Gender != GenderMale && p.Gender != GenderFemale {
		return &ValidationError{Field: "gender", Reason: fmt.Sprintf("unknown gender %q", p.Gender)}
	}
	for _, condition := range p.HealthConditions {
		if !validConditions[condition] {
			return &ValidationError{Field: "health_conditions", Reason: fmt.Sprintf("unknown condition %q", condition)}
		}
	}
	for _, preference := range p.Preferences {
		if !validPreferences[preference] {
			return &ValidationError{Field: "preferences", Reason: fmt.Sprintf("unknown preference %q", preference)}
		}
	}
	return nil
}

// RestingHROrEstimate returns the measured resting heart rate, or an estimate
// from fitness level and age when no measurement exists.
//
// The estimate starts from a per-level baseline (beginners idle higher) and
// shifts upward with age past forty and sixty, downward under twenty-five.
func (p *Profile) RestingHROrEstimate() int {
	if p.RestingHeartRate != nil {
		return *p.RestingHeartRate
	}

	base := 70
	switch p.FitnessLevel {
	case LevelBeginner:
		base = 75
	case LevelIntermediate:
		base = 65
	case LevelAdvanced:
		base = 55
	}

	switch {
	case p.Age > 60:
		base += 8
	case p.Age > 40:
		base += 5
	case p.Age < 25:
		base -= 5
	}

	return base
}

// BMI returns the body mass index rounded to one decimal.
func (p *Profile) BMI() float64 {
	bmi := p.WeightKg / (p.HeightM * p.HeightM)
	return float64(int(bmi*10+0.5)) / 10
}

// BMICategory buckets the BMI into the WHO categories.
func (p *Profile) BMICategory() string {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// HasCondition reports whether the profile carries the given condition.
func (p *Profile) HasCondition(condition HealthCondition) bool {
	for _, c := range p.HealthConditions {
		if c == condition {
			return true
		}
	}
	return false
}

// Prefers reports whether the given exercise preference is set.
func (p *Profile) Prefers(preference ExercisePreference) bool {
	for _, pref := range p.Preferences {
		if pref == preference {
			return true
		}
	}
	return false
}
