package workout

import (
	"fmt"
	"sort"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

// selectionInput carries everything the pure selection algorithm needs.
type selectionInput struct {
	durationMinutes    int
	workoutType        WorkoutType
	zoneIntensity      heartrate.Intensity
	availableEquipment []Equipment
	healthConditions   []profile.HealthCondition
	fitnessLevel       profile.FitnessLevel
	preferences        []profile.ExercisePreference
	pool               []Exercise
}

const minBlockMinutes = 5

// warmUpMinutes reserves a sixth of the session, never under five minutes.
func warmUpMinutes(duration int) int {
	if m := duration / 6; m > minBlockMinutes {
		return m
	}
	return minBlockMinutes
}

// coolDownMinutes reserves an eighth of the session, never under five minutes.
func coolDownMinutes(duration int) int {
	if m := duration / 8; m > minBlockMinutes {
		return m
	}
	return minBlockMinutes
}

func warmUpBlock(minutes int) Block {
	return Block{
		Name:            "Warm-up",
		DurationMinutes: minutes,
		Activities:      []string{"easy walking", "dynamic stretching", "joint mobility"},
	}
}

func coolDownBlock(minutes int) Block {
	return Block{
		Name:            "Cool-down",
		DurationMinutes: minutes,
		Activities:      []string{"slow walking", "static stretching", "deep breathing"},
	}
}

// buildPlan runs the full filter, score, and allocation pipeline. It never
// fails: over-constrained inputs produce a degraded plan with an explanation.
func buildPlan(in selectionInput) SessionPlan {
	warmUp := warmUpMinutes(in.durationMinutes)
	coolDown := coolDownMinutes(in.durationMinutes)
	mainBudget := in.durationMinutes - warmUp - coolDown

	plan := SessionPlan{
		WorkoutType:   in.workoutType,
		WarmUp:        warmUpBlock(warmUp),
		CoolDown:      coolDownBlock(coolDown),
		TotalDuration: in.durationMinutes,
	}

	if mainBudget <= 0 {
		plan.DegradationReason = "session too short for main exercises after warm-up and cool-down"
		return plan
	}

	if in.workoutType == WorkoutMixed {
		// 60/40 split between cardio and strength, each allocated on its own.
		cardioBudget := mainBudget * 60 / 100
		strengthBudget := mainBudget - cardioBudget
		cardio, cardioReason := selectForType(in, TypeCardio, cardioBudget)
		strength, strengthReason := selectForType(in, TypeStrength, strengthBudget)
		plan.Main = append(cardio, strength...)
		plan.DegradationReason = joinReasons(cardioReason, strengthReason)
		return plan
	}

	exerciseType := ExerciseType(in.workoutType)
	plan.Main, plan.DegradationReason = selectForType(in, exerciseType, mainBudget)
	return plan
}

// selectForType filters and allocates candidates of one exercise type into
// the given budget. The returned reason is empty unless selection degraded.
func selectForType(in selectionInput, exerciseType ExerciseType, budget int) ([]PlannedExercise, string) {
	eligible := filterCandidates(in, exerciseType)
	if len(eligible) == 0 {
		return nil, fmt.Sprintf("no eligible %s exercises for the current constraints", exerciseType)
	}

	scored := scoreCandidates(eligible, in.preferences)
	allocated := allocate(scored, budget, in.zoneIntensity)
	if len(allocated) == 0 {
		return nil, fmt.Sprintf("no %s exercise fits the remaining %d minutes", exerciseType, budget)
	}
	return allocated, ""
}

// filterCandidates drops candidates by equipment, contraindication, and
// difficulty band, preserving pool order.
func filterCandidates(in selectionInput, exerciseType ExerciseType) []Exercise {
	available := make(map[Equipment]bool, len(in.availableEquipment))
	for _, equipment := range in.availableEquipment {
		available[equipment] = true
	}
	conditions := make(map[profile.HealthCondition]bool, len(in.healthConditions))
	for _, condition := range in.healthConditions {
		conditions[condition] = true
	}
	band, ok := difficultyBands[in.fitnessLevel]
	if !ok {
		band = difficultyBands[profile.LevelBeginner]
	}
	allowedDifficulty := make(map[Difficulty]bool, len(band))
	for _, difficulty := range band {
		allowedDifficulty[difficulty] = true
	}

	var eligible []Exercise
	for _, candidate := range in.pool {
		if candidate.Type != exerciseType {
			continue
		}
		if !allowedDifficulty[candidate.Difficulty] {
			continue
		}
		if !equipmentSatisfied(candidate.Equipment, available) {
			continue
		}
		if contraindicated(candidate.Contraindications, conditions) {
			continue
		}
		eligible = append(eligible, candidate)
	}
	return eligible
}

// equipmentSatisfied requires every needed piece to be available. Exercises
// needing nothing always pass.
func equipmentSatisfied(needed []Equipment, available map[Equipment]bool) bool {
	for _, equipment := range needed {
		if !available[equipment] {
			return false
		}
	}
	return true
}

func contraindicated(contraindications []profile.HealthCondition, conditions map[profile.HealthCondition]bool) bool {
	for _, contraindication := range contraindications {
		if conditions[contraindication] {
			return true
		}
	}
	return false
}

type scoredExercise struct {
	exercise Exercise
	score    int
}

// scoreCandidates rewards preferred types and high-value muscle groups. The
// stable sort keeps pool order for equal scores, which makes selection
// reproducible.
func scoreCandidates(eligible []Exercise, preferences []profile.ExercisePreference) []scoredExercise {
	preferred := make(map[string]bool, len(preferences))
	for _, preference := range preferences {
		preferred[string(preference)] = true
	}

	scored := make([]scoredExercise, 0, len(eligible))
	for _, candidate := range eligible {
		score := 0
		if preferred[string(candidate.Type)] {
			score += 10
		}
		for _, muscleGroup := range candidate.MuscleGroups {
			if highValueMuscleGroups[muscleGroup] {
				score += 5
			}
		}
		scored = append(scored, scoredExercise{exercise: candidate, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// allocate greedily fills the budget in descending score order. High zone
// intensity caps continuous efforts at fifteen minutes instead of thirty.
func allocate(scored []scoredExercise, budget int, zoneIntensity heartrate.Intensity) []PlannedExercise {
	perExerciseCap := 30
	if zoneIntensity.HighIntensity() {
		perExerciseCap = 15
	}

	var allocated []PlannedExercise
	remaining := budget
	for _, candidate := range scored {
		if remaining <= 0 {
			break
		}
		minutes := candidate.exercise.MaxDuration
		if remaining < minutes {
			minutes = remaining
		}
		if perExerciseCap < minutes {
			minutes = perExerciseCap
		}
		if minutes < candidate.exercise.MinDuration {
			continue
		}
		allocated = append(allocated, PlannedExercise{
			Exercise:         candidate.exercise,
			AllocatedMinutes: minutes,
		})
		remaining -= minutes
	}
	return allocated
}

func joinReasons(reasons ...string) string {
	joined := ""
	for _, reason := range reasons {
		if reason == "" {
			continue
		}
		if joined != "" {
			joined += "; "
		}
		joined += reason
	}
	return joined
}
