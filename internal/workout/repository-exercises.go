package workout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/sqlite"
)

// SQLiteExercisePool serves exercise candidates from the seeded catalog.
type SQLiteExercisePool struct {
	db *sqlite.Database
}

var _ ExercisePool = (*SQLiteExercisePool)(nil)

// NewSQLiteExercisePool creates the catalog-backed pool.
func NewSQLiteExercisePool(db *sqlite.Database) *SQLiteExercisePool {
	return &SQLiteExercisePool{db: db}
}

// Query returns matching exercises in catalog order so that repeated calls
// produce identical pools.
func (r *SQLiteExercisePool) Query(ctx context.Context, filter PoolFilter) (_ []Exercise, err error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, name, type, difficulty, met_activity, description, instructions,
		       duration_min, duration_max,
		       kcal_per_min_beginner, kcal_per_min_intermediate, kcal_per_min_advanced
		FROM exercises`)

	var (
		clauses []string
		args    []any
	)
	if len(filter.Types) > 0 {
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", placeholders(len(filter.Types))))
		for _, exerciseType := range filter.Types {
			args = append(args, string(exerciseType))
		}
	}
	if len(filter.Difficulties) > 0 {
		clauses = append(clauses, fmt.Sprintf("difficulty IN (%s)", placeholders(len(filter.Difficulties))))
		for _, difficulty := range filter.Difficulties {
			args = append(args, string(difficulty))
		}
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY sort_order")

	rows, err := r.db.ReadOnly.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			exercise                                           Exercise
			kcalBeginner, kcalIntermediate, kcalAdvanced       float64
			exerciseType, difficulty                           string
		)
		if err = rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exerciseType,
			&difficulty,
			&exercise.METActivity,
			&exercise.Description,
			&exercise.Instructions,
			&exercise.MinDuration,
			&exercise.MaxDuration,
			&kcalBeginner,
			&kcalIntermediate,
			&kcalAdvanced,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercise.Type = ExerciseType(exerciseType)
		exercise.Difficulty = Difficulty(difficulty)
		exercise.CaloriesPerMinute = map[profile.FitnessLevel]float64{
			profile.LevelBeginner:     kcalBeginner,
			profile.LevelIntermediate: kcalIntermediate,
			profile.LevelAdvanced:     kcalAdvanced,
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		if err = r.loadExerciseDetails(ctx, &exercises[i]); err != nil {
			return nil, fmt.Errorf("load details for exercise %s: %w", exercises[i].ID, err)
		}
	}
	return exercises, nil
}

func (r *SQLiteExercisePool) loadExerciseDetails(ctx context.Context, exercise *Exercise) (err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT equipment
		FROM exercise_equipment
		WHERE exercise_id = ?
		ORDER BY equipment`, exercise.ID)
	if err != nil {
		return fmt.Errorf("query equipment: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close equipment rows: %w", closeErr))
		}
	}()
	for rows.Next() {
		var equipment string
		if err = rows.Scan(&equipment); err != nil {
			return fmt.Errorf("scan equipment: %w", err)
		}
		exercise.Equipment = append(exercise.Equipment, Equipment(equipment))
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate equipment rows: %w", err)
	}

	contraRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT condition
		FROM exercise_contraindications
		WHERE exercise_id = ?
		ORDER BY condition`, exercise.ID)
	if err != nil {
		return fmt.Errorf("query contraindications: %w", err)
	}
	defer func() {
		if closeErr := contraRows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close contraindication rows: %w", closeErr))
		}
	}()
	for contraRows.Next() {
		var condition string
		if err = contraRows.Scan(&condition); err != nil {
			return fmt.Errorf("scan contraindication: %w", err)
		}
		exercise.Contraindications = append(exercise.Contraindications, profile.HealthCondition(condition))
	}
	if err = contraRows.Err(); err != nil {
		return fmt.Errorf("iterate contraindication rows: %w", err)
	}

	muscleRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT muscle_group
		FROM exercise_muscle_groups
		WHERE exercise_id = ?
		ORDER BY muscle_group`, exercise.ID)
	if err != nil {
		return fmt.Errorf("query muscle groups: %w", err)
	}
	defer func() {
		if closeErr := muscleRows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close muscle group rows: %w", closeErr))
		}
	}()
	for muscleRows.Next() {
		var muscleGroup string
		if err = muscleRows.Scan(&muscleGroup); err != nil {
			return fmt.Errorf("scan muscle group: %w", err)
		}
		exercise.MuscleGroups = append(exercise.MuscleGroups, muscleGroup)
	}
	if err = muscleRows.Err(); err != nil {
		return fmt.Errorf("iterate muscle group rows: %w", err)
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
