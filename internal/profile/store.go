package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/myrjola/pulsecoach/internal/sqlite"
)

// ErrNotFound is returned when the requested profile does not exist.
var ErrNotFound = errors.New("profile not found")

const timestampFormat = "2006-01-02T15:04:05.000Z"

// Store persists profiles.
type Store interface {
	Get(ctx context.Context, id int64) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, p *Profile) (*Profile, error)
	Update(ctx context.Context, id int64, updateFn func(p *Profile) error) (*Profile, error)
	Delete(ctx context.Context, id int64) error
}

// SQLiteStore is the SQLite-backed profile store.
type SQLiteStore struct {
	db *sqlite.Database
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a profile store on top of the shared database.
func NewSQLiteStore(db *sqlite.Database) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a single profile with its conditions and preferences.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Profile, error) {
	var (
		p            Profile
		gender       string
		level        string
		restingHR    sql.NullInt64
		createdAtStr string
		updatedAtStr string
	)
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, age, weight_kg, height_m, gender, fitness_level,
		       resting_heart_rate, created_at, updated_at
		FROM profiles
		WHERE id = ?`, id).Scan(
		&p.ID,
		&p.DisplayName,
		&p.Age,
		&p.WeightKg,
		&p.HeightM,
		&gender,
		&level,
		&restingHR,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	p.Gender = Gender(gender)
	p.FitnessLevel = FitnessLevel(level)
	if restingHR.Valid {
		resting := int(restingHR.Int64)
		p.RestingHeartRate = &resting
	}
	if p.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(timestampFormat, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	if p.HealthConditions, p.Preferences, err = s.fetchLists(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("fetch profile lists: %w", err)
	}

	return &p, nil
}

// List returns all profiles ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) (_ []*Profile, err error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT id
		FROM profiles
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	profiles := make([]*Profile, 0, len(ids))
	for _, id := range ids {
		var p *Profile
		if p, err = s.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("get profile %d: %w", id, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Create validates and inserts a new profile.
func (s *SQLiteStore) Create(ctx context.Context, p *Profile) (_ *Profile, err error) {
	if err = p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (display_name, age, weight_kg, height_m, gender, fitness_level,
		                      resting_heart_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.DisplayName, p.Age, p.WeightKg, p.HeightM, string(p.Gender), string(p.FitnessLevel),
		nullableInt(p.RestingHeartRate), now.Format(timestampFormat), now.Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if p.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("get last insert ID: %w", err)
	}

	if err = insertLists(ctx, tx, p); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return p, nil
}

// Update loads the profile, applies updateFn, validates, and saves the result.
func (s *SQLiteStore) Update(ctx context.Context, id int64, updateFn func(p *Profile) error) (_ *Profile, err error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = updateFn(p); err != nil {
		return nil, fmt.Errorf("update function: %w", err)
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}

	p.ID = id
	p.UpdatedAt = time.Now().UTC()

	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	_, err = tx.ExecContext(ctx, `
		UPDATE profiles
		SET display_name = ?, age = ?, weight_kg = ?, height_m = ?, gender = ?,
		    fitness_level = ?, resting_heart_rate = ?, updated_at = ?
		WHERE id = ?`,
		p.DisplayName, p.Age, p.WeightKg, p.HeightM, string(p.Gender), string(p.FitnessLevel),
		nullableInt(p.RestingHeartRate), p.UpdatedAt.Format(timestampFormat), id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM profile_health_conditions WHERE profile_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear health conditions: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profile_preferences WHERE profile_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear preferences: %w", err)
	}
	if err = insertLists(ctx, tx, p); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return p, nil
}

// Delete removes the profile. The join tables cascade.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ReadWrite.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) fetchLists(
	ctx context.Context,
	profileID int64,
) (_ []HealthCondition, _ []ExercisePreference, err error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT condition
		FROM profile_health_conditions
		WHERE profile_id = ?
		ORDER BY condition`, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("query health conditions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var conditions []HealthCondition
	for rows.Next() {
		var condition string
		if err = rows.Scan(&condition); err != nil {
			return nil, nil, fmt.Errorf("scan health condition: %w", err)
		}
		conditions = append(conditions, HealthCondition(condition))
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate health condition rows: %w", err)
	}

	prefRows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT preference
		FROM profile_preferences
		WHERE profile_id = ?
		ORDER BY preference`, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("query preferences: %w", err)
	}
	defer func() {
		if closeErr := prefRows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close preference rows: %w", closeErr))
		}
	}()

	var preferences []ExercisePreference
	for prefRows.Next() {
		var preference string
		if err = prefRows.Scan(&preference); err != nil {
			return nil, nil, fmt.Errorf("scan preference: %w", err)
		}
		preferences = append(preferences, ExercisePreference(preference))
	}
	if err = prefRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate preference rows: %w", err)
	}

	return conditions, preferences, nil
}

func insertLists(ctx context.Context, tx *sql.Tx, p *Profile) error {
	for _, condition := range p.HealthConditions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile_health_conditions (profile_id, condition)
			VALUES (?, ?)
			ON CONFLICT (profile_id, condition) DO NOTHING`, p.ID, string(condition)); err != nil {
			return fmt.Errorf("insert health condition %s: %w", condition, err)
		}
	}
	for _, preference := range p.Preferences {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile_preferences (profile_id, preference)
			VALUES (?, ?)
			ON CONFLICT (profile_id, preference) DO NOTHING`, p.ID, string(preference)); err != nil {
			return fmt.Errorf("insert preference %s: %w", preference, err)
		}
	}
	return nil
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
