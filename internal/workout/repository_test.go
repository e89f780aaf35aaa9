package workout_test

import (
	"context"
	"testing"
	"time"

	"github.com/myrjola/pulsecoach/internal/sqlite"
	"github.com/myrjola/pulsecoach/internal/testhelpers"
	"github.com/myrjola/pulsecoach/internal/workout"
)

func newTestDatabase(t *testing.T) *sqlite.Database {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Error(closeErr)
		}
	})
	return db
}

func TestSQLiteExercisePoolQuery(t *testing.T) {
	ctx := context.Background()
	pool := workout.NewSQLiteExercisePool(newTestDatabase(t))

	all, err := pool.Query(ctx, workout.PoolFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("seeded catalog should not be empty")
	}

	cardio, err := pool.Query(ctx, workout.PoolFilter{
		Types:        []workout.ExerciseType{workout.TypeCardio},
		Difficulties: []workout.Difficulty{workout.DifficultyVeryLow, workout.DifficultyLow},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(cardio) == 0 {
		t.Fatal("want easy cardio candidates")
	}
	for _, exercise := range cardio {
		if exercise.Type != workout.TypeCardio {
			t.Errorf("exercise %s has type %s, want cardio", exercise.ID, exercise.Type)
		}
		if exercise.Difficulty != workout.DifficultyVeryLow && exercise.Difficulty != workout.DifficultyLow {
			t.Errorf("exercise %s has difficulty %s", exercise.ID, exercise.Difficulty)
		}
	}

	// Catalog order must be stable across calls.
	again, err := pool.Query(ctx, workout.PoolFilter{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range all {
		if all[i].ID != again[i].ID {
			t.Fatalf("catalog order changed between calls at index %d", i)
		}
	}
}

func TestSQLiteExercisePoolLoadsDetails(t *testing.T) {
	ctx := context.Background()
	pool := workout.NewSQLiteExercisePool(newTestDatabase(t))

	all, err := pool.Query(ctx, workout.PoolFilter{})
	if err != nil {
		t.Fatal(err)
	}

	byID := make(map[string]workout.Exercise, len(all))
	for _, exercise := range all {
		byID[exercise.ID] = exercise
	}

	treadmill, ok := byID["treadmill_run"]
	if !ok {
		t.Fatal("treadmill_run missing from catalog")
	}
	if len(treadmill.Equipment) != 1 || treadmill.Equipment[0] != "treadmill" {
		t.Errorf("treadmill_run equipment = %v", treadmill.Equipment)
	}
	if len(treadmill.Contraindications) == 0 {
		t.Error("treadmill_run should carry contraindications")
	}

	squat, ok := byID["bodyweight_squat"]
	if !ok {
		t.Fatal("bodyweight_squat missing from catalog")
	}
	if len(squat.MuscleGroups) == 0 {
		t.Error("bodyweight_squat should carry muscle groups")
	}
}

func TestSQLitePlanStoreSaveAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	plans := workout.NewSQLitePlanStore(db)

	// Plans reference a profile row.
	profileID := insertProfile(t, db)

	plan := workout.SessionPlan{
		ProfileID:         profileID,
		WorkoutType:       workout.WorkoutCardio,
		TotalDuration:     45,
		EstimatedCalories: 320,
		CalorieMode:       "met",
		Main: []workout.PlannedExercise{
			{Exercise: workout.Exercise{ID: "brisk_walk"}, AllocatedMinutes: 19},
			{Exercise: workout.Exercise{ID: "stationary_bike"}, AllocatedMinutes: 14},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := plans.Save(ctx, &plan); err != nil {
		t.Fatal(err)
	}
	if plan.ID == 0 {
		t.Fatal("saved plan should have an ID")
	}

	recent, err := plans.RecentPlans(ctx, profileID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 {
		t.Fatalf("want 1 plan, got %d", len(recent))
	}
	if recent[0].EstimatedCalories != 320 {
		t.Errorf("EstimatedCalories = %d, want 320", recent[0].EstimatedCalories)
	}
}

func insertProfile(t *testing.T, db *sqlite.Database) int64 {
	t.Helper()
	result, err := db.ReadWrite.ExecContext(context.Background(), `
		INSERT INTO profiles (display_name, age, weight_kg, height_m, gender, fitness_level, created_at, updated_at)
		VALUES ('Plan Tester', 30, 70, 1.75, 'male', 'intermediate',
		        '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')`)
	if err != nil {
		t.Fatal(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	return id
}
