package workout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

func candidate(id string, exerciseType ExerciseType, difficulty Difficulty, opts ...func(*Exercise)) Exercise {
	exercise := Exercise{
		ID:          id,
		Name:        id,
		Type:        exerciseType,
		Difficulty:  difficulty,
		METActivity: "walking",
		MinDuration: 5,
		MaxDuration: 30,
	}
	for _, opt := range opts {
		opt(&exercise)
	}
	return exercise
}

func withEquipment(equipment ...Equipment) func(*Exercise) {
	return func(e *Exercise) { e.Equipment = equipment }
}

func withContraindications(conditions ...profile.HealthCondition) func(*Exercise) {
	return func(e *Exercise) { e.Contraindications = conditions }
}

func withMuscleGroups(groups ...string) func(*Exercise) {
	return func(e *Exercise) { e.MuscleGroups = groups }
}

func withDurations(minDuration, maxDuration int) func(*Exercise) {
	return func(e *Exercise) {
		e.MinDuration = minDuration
		e.MaxDuration = maxDuration
	}
}

func TestWarmUpAndCoolDownBudgets(t *testing.T) {
	tests := []struct {
		duration     int
		wantWarmUp   int
		wantCoolDown int
	}{
		{duration: 45, wantWarmUp: 7, wantCoolDown: 5},
		{duration: 30, wantWarmUp: 5, wantCoolDown: 5},
		{duration: 60, wantWarmUp: 10, wantCoolDown: 7},
		{duration: 120, wantWarmUp: 20, wantCoolDown: 15},
	}
	for _, tt := range tests {
		if got := warmUpMinutes(tt.duration); got != tt.wantWarmUp {
			t.Errorf("warmUpMinutes(%d) = %d, want %d", tt.duration, got, tt.wantWarmUp)
		}
		if got := coolDownMinutes(tt.duration); got != tt.wantCoolDown {
			t.Errorf("coolDownMinutes(%d) = %d, want %d", tt.duration, got, tt.wantCoolDown)
		}
	}
}

func TestFilterCandidates(t *testing.T) {
	pool := []Exercise{
		candidate("no_equipment", TypeCardio, DifficultyLow),
		candidate("needs_treadmill", TypeCardio, DifficultyLow, withEquipment("treadmill")),
		candidate("needs_pool", TypeCardio, DifficultyLow, withEquipment("pool")),
		candidate("contraindicated", TypeCardio, DifficultyLow,
			withContraindications(profile.ConditionHeartDisease)),
		candidate("too_hard", TypeCardio, DifficultyHigh),
		candidate("wrong_type", TypeStrength, DifficultyLow),
	}

	eligible := filterCandidates(selectionInput{
		availableEquipment: []Equipment{"treadmill"},
		healthConditions:   []profile.HealthCondition{profile.ConditionHeartDisease},
		fitnessLevel:       profile.LevelIntermediate,
		pool:               pool,
	}, TypeCardio)

	var ids []string
	for _, exercise := range eligible {
		ids = append(ids, exercise.ID)
	}
	want := []string{"no_equipment", "needs_treadmill"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("eligible candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreCandidatesOrdering(t *testing.T) {
	pool := []Exercise{
		candidate("plain_first", TypeCardio, DifficultyLow),
		candidate("plain_second", TypeCardio, DifficultyLow),
		candidate("core_and_legs", TypeCardio, DifficultyLow, withMuscleGroups("core", "legs")),
		candidate("preferred", TypeStrength, DifficultyLow),
	}

	scored := scoreCandidates(pool, []profile.ExercisePreference{profile.PreferenceStrength})

	var ids []string
	for _, entry := range scored {
		ids = append(ids, entry.exercise.ID)
	}
	// core_and_legs and preferred both score 10, so pool order decides
	// between them.
	want := []string{"core_and_legs", "preferred", "plain_first", "plain_second"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("score order mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocateRespectsBudgetAndCaps(t *testing.T) {
	scored := scoreCandidates([]Exercise{
		candidate("long", TypeCardio, DifficultyLow, withDurations(10, 60)),
		candidate("short", TypeCardio, DifficultyLow, withDurations(5, 20)),
	}, nil)

	allocated := allocate(scored, 40, heartrate.IntensityLow)
	if len(allocated) != 2 {
		t.Fatalf("want 2 allocations, got %d", len(allocated))
	}
	// The thirty-minute cap stops the first exercise from eating the budget.
	if allocated[0].AllocatedMinutes != 30 {
		t.Errorf("first allocation = %d, want 30", allocated[0].AllocatedMinutes)
	}
	if allocated[1].AllocatedMinutes != 10 {
		t.Errorf("second allocation = %d, want 10", allocated[1].AllocatedMinutes)
	}

	capped := allocate(scored, 40, heartrate.IntensityHigh)
	for _, planned := range capped {
		if planned.AllocatedMinutes > 15 {
			t.Errorf("high intensity allocation = %d, want at most 15", planned.AllocatedMinutes)
		}
	}
}

func TestAllocateRejectsBelowMinimum(t *testing.T) {
	scored := scoreCandidates([]Exercise{
		candidate("needs_twenty", TypeCardio, DifficultyLow, withDurations(20, 40)),
	}, nil)

	if allocated := allocate(scored, 10, heartrate.IntensityLow); len(allocated) != 0 {
		t.Errorf("want no allocations under the minimum duration, got %v", allocated)
	}
}

func TestBuildPlanMixedSplit(t *testing.T) {
	pool := []Exercise{
		candidate("cardio_a", TypeCardio, DifficultyLow, withDurations(5, 60)),
		candidate("strength_a", TypeStrength, DifficultyLow, withDurations(5, 60)),
	}

	plan := buildPlan(selectionInput{
		durationMinutes: 45,
		workoutType:     WorkoutMixed,
		zoneIntensity:   heartrate.IntensityLow,
		fitnessLevel:    profile.LevelIntermediate,
		pool:            pool,
	})

	if plan.WarmUp.DurationMinutes != 7 {
		t.Errorf("warm-up = %d, want 7", plan.WarmUp.DurationMinutes)
	}
	if plan.CoolDown.DurationMinutes != 5 {
		t.Errorf("cool-down = %d, want 5", plan.CoolDown.DurationMinutes)
	}
	if len(plan.Main) != 2 {
		t.Fatalf("want cardio and strength allocations, got %v", plan.Main)
	}
	// Main budget 33 splits 19 cardio and 14 strength.
	if plan.Main[0].AllocatedMinutes != 19 {
		t.Errorf("cardio allocation = %d, want 19", plan.Main[0].AllocatedMinutes)
	}
	if plan.Main[1].AllocatedMinutes != 14 {
		t.Errorf("strength allocation = %d, want 14", plan.Main[1].AllocatedMinutes)
	}
	if plan.DegradationReason != "" {
		t.Errorf("unexpected degradation: %q", plan.DegradationReason)
	}
}

func TestBuildPlanDegradesInsteadOfFailing(t *testing.T) {
	// No strength candidates at all: the cardio half still gets planned.
	pool := []Exercise{
		candidate("cardio_a", TypeCardio, DifficultyLow, withDurations(5, 60)),
	}

	plan := buildPlan(selectionInput{
		durationMinutes: 45,
		workoutType:     WorkoutMixed,
		zoneIntensity:   heartrate.IntensityLow,
		fitnessLevel:    profile.LevelIntermediate,
		pool:            pool,
	})

	if len(plan.Main) != 1 {
		t.Fatalf("want the cardio allocation, got %v", plan.Main)
	}
	if plan.DegradationReason == "" {
		t.Error("want a degradation reason for the missing strength half")
	}
}
