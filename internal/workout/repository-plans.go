package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// SQLitePlanStore persists session plans for later statistics.
type SQLitePlanStore struct {
	db *sqlite.Database
}

var _ PlanPersister = (*SQLitePlanStore)(nil)

// NewSQLitePlanStore creates the plan store.
func NewSQLitePlanStore(db *sqlite.Database) *SQLitePlanStore {
	return &SQLitePlanStore{db: db}
}

// Save writes the plan and its exercise allocations, filling in plan.ID.
func (r *SQLitePlanStore) Save(ctx context.Context, plan *SessionPlan) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO session_plans (profile_id, workout_type, total_duration, estimated_calories,
		                           calorie_mode, unsafe, degradation_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ProfileID, string(plan.WorkoutType), plan.TotalDuration, plan.EstimatedCalories,
		string(plan.CalorieMode), plan.Unsafe, plan.DegradationReason,
		plan.CreatedAt.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("insert session plan: %w", err)
	}
	if plan.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("get last insert ID: %w", err)
	}

	for position, planned := range plan.Main {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO session_plan_exercises (plan_id, position, exercise_id, allocated_minutes)
			VALUES (?, ?, ?, ?)`,
			plan.ID, position+1, planned.Exercise.ID, planned.AllocatedMinutes); err != nil {
			return fmt.Errorf("insert plan exercise %s: %w", planned.Exercise.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RecentPlans lists the latest plans for a profile, newest first, for the
// statistics tooling.
func (r *SQLitePlanStore) RecentPlans(ctx context.Context, profileID int64, limit int) (_ []SessionPlan, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, workout_type, total_duration, estimated_calories, calorie_mode,
		       unsafe, degradation_reason, created_at
		FROM session_plans
		WHERE profile_id = ?
		ORDER BY id DESC
		LIMIT ?`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("query session plans: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var plans []SessionPlan
	for rows.Next() {
		var (
			plan         SessionPlan
			workoutType  string
			calorieMode  string
			createdAtStr string
		)
		if err = rows.Scan(
			&plan.ID,
			&workoutType,
			&plan.TotalDuration,
			&plan.EstimatedCalories,
			&calorieMode,
			&plan.Unsafe,
			&plan.DegradationReason,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scan session plan: %w", err)
		}
		plan.ProfileID = profileID
		plan.WorkoutType = WorkoutType(workoutType)
		plan.CalorieMode = heartrate.CalorieMode(calorieMode)
		if plan.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return plans, nil
}
