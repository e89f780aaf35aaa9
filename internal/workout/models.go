// Package workout selects and allocates exercises into session plans using
// the zone and safety outputs of the heartrate package.
package workout

import (
	"time"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

// Equipment names a piece of training equipment, e.g. "treadmill".
type Equipment string

// Difficulty grades how demanding an exercise is.
type Difficulty string

const (
	DifficultyVeryLow  Difficulty = "very_low"
	DifficultyLow      Difficulty = "low"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHigh     Difficulty = "high"
	DifficultyVeryHigh Difficulty = "very_high"
)

// ExerciseType is the modality of a single exercise.
type ExerciseType string

const (
	TypeCardio      ExerciseType = "cardio"
	TypeStrength    ExerciseType = "strength"
	TypeHIIT        ExerciseType = "hiit"
	TypeFlexibility ExerciseType = "flexibility"
)

// WorkoutType is what the user asked the session to be.
type WorkoutType string

const (
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutStrength    WorkoutType = "strength"
	WorkoutMixed       WorkoutType = "mixed"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutHIIT        WorkoutType = "hiit"
)

// difficultyBands maps a fitness level to the difficulties the user may be
// offered. The bands overlap so progress between levels is gradual.
var difficultyBands = map[profile.FitnessLevel][]Difficulty{
	profile.LevelBeginner:     {DifficultyVeryLow, DifficultyLow},
	profile.LevelIntermediate: {DifficultyLow, DifficultyModerate},
	profile.LevelAdvanced:     {DifficultyModerate, DifficultyHigh, DifficultyVeryHigh},
}

// highValueMuscleGroups earn a scoring bonus because they drive whole-body
// benefit.
var highValueMuscleGroups = map[string]bool{
	"core": true,
	"legs": true,
}

// Exercise is a catalog entry eligible for selection.
type Exercise struct {
	ID                string                           `json:"id"`
	Name              string                           `json:"name"`
	Type              ExerciseType                     `json:"type"`
	Difficulty        Difficulty                       `json:"difficulty"`
	METActivity       string                           `json:"met_activity"`
	Description       string                           `json:"description"`
	Instructions      string                           `json:"instructions"`
	MinDuration       int                              `json:"min_duration"`
	MaxDuration       int                              `json:"max_duration"`
	CaloriesPerMinute map[profile.FitnessLevel]float64 `json:"calories_per_minute"`
	Equipment         []Equipment                      `json:"equipment"`
	Contraindications []profile.HealthCondition        `json:"contraindications"`
	MuscleGroups      []string                         `json:"muscle_groups"`
}

// intensity maps the difficulty onto the shared intensity scale used by the
// MET tables.
func (e Exercise) intensity() heartrate.Intensity {
	switch e.Difficulty {
	case DifficultyVeryLow:
		return heartrate.IntensityVeryLow
	case DifficultyLow:
		return heartrate.IntensityLow
	case DifficultyHigh:
		return heartrate.IntensityHigh
	case DifficultyVeryHigh:
		return heartrate.IntensityMaximum
	default:
		return heartrate.IntensityModerate
	}
}

// PlannedExercise is an exercise with its allocated share of the session.
type PlannedExercise struct {
	Exercise         Exercise `json:"exercise"`
	AllocatedMinutes int      `json:"allocated_minutes"`
}

// Block is a warm-up or cool-down segment.
type Block struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Activities      []string `json:"activities"`
}

// SessionPlan is a complete session recommendation. A plan is always
// returned: over-constrained selection degrades with a reason and an unsafe
// heart rate shrinks the plan to the warm-up block.
type SessionPlan struct {
	ID                int64                     `json:"id,omitempty"`
	ProfileID         int64                     `json:"profile_id"`
	WorkoutType       WorkoutType               `json:"workout_type"`
	WarmUp            Block                     `json:"warm_up"`
	Main              []PlannedExercise         `json:"main"`
	CoolDown          Block                     `json:"cool_down"`
	TotalDuration     int                       `json:"total_duration"`
	EstimatedCalories int                       `json:"estimated_calories"`
	CalorieMode       heartrate.CalorieMode     `json:"calorie_mode"`
	Unsafe            bool                      `json:"unsafe"`
	SafetyVerdict     *heartrate.SafetyVerdict  `json:"safety_verdict,omitempty"`
	DegradationReason string                    `json:"degradation_reason,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// MainMinutes is the total time allocated to main exercises.
func (p SessionPlan) MainMinutes() int {
	total := 0
	for _, planned := range p.Main {
		total += planned.AllocatedMinutes
	}
	return total
}
