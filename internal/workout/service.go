package workout

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

// ErrInvalidDuration rejects session durations the selector cannot fill
// sensibly.
var ErrInvalidDuration = errors.NewSentinel("duration must be between 10 and 180 minutes")

// PoolFilter narrows the candidate query. Empty slices mean no restriction.
type PoolFilter struct {
	Types        []ExerciseType
	Difficulties []Difficulty
}

// ExercisePool supplies exercise candidates. Implementations must return the
// pool in a stable order because selection tie-breaks on it.
type ExercisePool interface {
	Query(ctx context.Context, filter PoolFilter) ([]Exercise, error)
}

// PlanPersister saves finished plans. Optional: a nil persister disables
// saving.
type PlanPersister interface {
	Save(ctx context.Context, plan *SessionPlan) error
}

// Service is the engine facade used by the HTTP handlers and chatbot tools.
type Service struct {
	logger   *slog.Logger
	profiles profile.Store
	pool     ExercisePool
	plans    PlanPersister
}

// NewService wires the engine. plans may be nil.
func NewService(logger *slog.Logger, profiles profile.Store, pool ExercisePool, plans PlanPersister) *Service {
	return &Service{
		logger:   logger,
		profiles: profiles,
		pool:     pool,
		plans:    plans,
	}
}

// ComputeZones calculates the five-band zone table.
func (s *Service) ComputeZones(
	age, restingHR int,
	formula heartrate.Formula,
	method heartrate.BoundMethod,
) (heartrate.ZoneTable, error) {
	if formula == "" {
		formula = heartrate.DefaultFormula
	}
	if method == "" {
		method = heartrate.MethodKarvonen
	}
	table, err := heartrate.CalculateZones(age, restingHR, formula, method)
	if err != nil {
		return heartrate.ZoneTable{}, errors.Wrap(err, "calculate zones",
			slog.Int("age", age), slog.Int("restingHR", restingHR))
	}
	return table, nil
}

// ClassifyCurrentHR places a reading onto the zone table.
func (s *Service) ClassifyCurrentHR(currentHR int, table heartrate.ZoneTable) (heartrate.ZoneResult, error) {
	result, err := heartrate.ClassifyHR(currentHR, table)
	if err != nil {
		return heartrate.ZoneResult{}, errors.Wrap(err, "classify heart rate", slog.Int("currentHR", currentHR))
	}
	return result, nil
}

// EvaluateSafety judges a reading against the person's limits.
func (s *Service) EvaluateSafety(
	currentHR, age int,
	level profile.FitnessLevel,
	conditions []profile.HealthCondition,
	formula heartrate.Formula,
) heartrate.SafetyVerdict {
	if formula == "" {
		formula = heartrate.DefaultFormula
	}
	return heartrate.EvaluateSafety(currentHR, age, level, conditions, formula)
}

// RecommendationRequest asks for a session plan.
type RecommendationRequest struct {
	ProfileID          int64
	CurrentHR          int
	DurationMinutes    int
	WorkoutType        WorkoutType
	AvailableEquipment []Equipment
}

// RecommendSession builds a session plan for the profile.
//
// An unsafe heart rate does not fail the call: the plan shrinks to the
// warm-up block with Unsafe set so the caller must act on the verdict first.
func (s *Service) RecommendSession(ctx context.Context, req RecommendationRequest) (SessionPlan, error) {
	const (
		minDuration = 10
		maxDuration = 180
	)
	if req.DurationMinutes < minDuration || req.DurationMinutes > maxDuration {
		return SessionPlan{}, ErrInvalidDuration
	}
	if req.WorkoutType == "" {
		req.WorkoutType = WorkoutMixed
	}

	p, err := s.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		return SessionPlan{}, errors.Wrap(err, "load profile", slog.Int64("profileID", req.ProfileID))
	}

	if req.CurrentHR > 0 {
		verdict := heartrate.EvaluateSafety(
			req.CurrentHR, p.Age, p.FitnessLevel, p.HealthConditions, heartrate.DefaultFormula)
		if !verdict.Safe {
			plan := s.warmUpOnlyPlan(req, &verdict)
			plan.ProfileID = p.ID
			s.logger.LogAttrs(ctx, slog.LevelWarn, "unsafe heart rate, returning warm-up only plan",
				slog.Int64("profileID", p.ID),
				slog.Int("currentHR", req.CurrentHR),
				slog.String("riskLevel", string(verdict.RiskLevel)))
			return plan, nil
		}
	}

	zoneIntensity, err := s.zoneIntensity(p, req.CurrentHR)
	if err != nil {
		return SessionPlan{}, err
	}

	pool, err := s.pool.Query(ctx, PoolFilter{Difficulties: difficultyBands[p.FitnessLevel]})
	if err != nil {
		return SessionPlan{}, errors.Wrap(err, "query exercise pool")
	}

	plan := buildPlan(selectionInput{
		durationMinutes:    req.DurationMinutes,
		workoutType:        req.WorkoutType,
		zoneIntensity:      zoneIntensity,
		availableEquipment: req.AvailableEquipment,
		healthConditions:   p.HealthConditions,
		fitnessLevel:       p.FitnessLevel,
		preferences:        p.Preferences,
		pool:               pool,
	})
	plan.ProfileID = p.ID
	plan.CreatedAt = time.Now().UTC()
	s.estimateCalories(&plan, p, req.CurrentHR)

	if s.plans != nil {
		if err = s.plans.Save(ctx, &plan); err != nil {
			return SessionPlan{}, errors.Wrap(err, "save session plan", slog.Int64("profileID", p.ID))
		}
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "recommended session",
		slog.Int64("profileID", p.ID),
		slog.String("workoutType", string(plan.WorkoutType)),
		slog.Int("mainExercises", len(plan.Main)),
		slog.Int("estimatedCalories", plan.EstimatedCalories))
	return plan, nil
}

// zoneIntensity derives the allocation cap from where the current heart rate
// sits in the zone table. Without a reading the session plans for moderate
// effort.
func (s *Service) zoneIntensity(p *profile.Profile, currentHR int) (heartrate.Intensity, error) {
	if currentHR <= 0 {
		return heartrate.IntensityModerate, nil
	}
	table, err := heartrate.CalculateZones(
		p.Age, p.RestingHROrEstimate(), heartrate.DefaultFormula, heartrate.MethodKarvonen)
	if err != nil {
		return "", errors.Wrap(err, "calculate zones for intensity")
	}
	result, err := heartrate.ClassifyHR(currentHR, table)
	if err != nil {
		return "", errors.Wrap(err, "classify heart rate for intensity")
	}
	if result.Zone == nil {
		return heartrate.IntensityModerate, nil
	}
	return result.Zone.Intensity, nil
}

// warmUpOnlyPlan is the safety-blocked shape of a plan.
func (s *Service) warmUpOnlyPlan(req RecommendationRequest, verdict *heartrate.SafetyVerdict) SessionPlan {
	warmUp := warmUpMinutes(req.DurationMinutes)
	return SessionPlan{
		WorkoutType:       req.WorkoutType,
		WarmUp:            warmUpBlock(warmUp),
		TotalDuration:     warmUp,
		Unsafe:            true,
		SafetyVerdict:     verdict,
		DegradationReason: "heart rate unsafe for exercise, complete the warm-up and re-check",
		CreatedAt:         time.Now().UTC(),
	}
}

// estimateCalories picks one estimation mode for the whole plan: the
// heart-rate regression when gender and a reading are known, the MET tables
// otherwise.
func (s *Service) estimateCalories(plan *SessionPlan, p *profile.Profile, currentHR int) {
	mainMinutes := plan.MainMinutes()
	if p.Gender != profile.GenderUnknown && currentHR > 0 {
		estimate := heartrate.EstimateFromHeartRate(currentHR, p.WeightKg, p.Age, p.Gender, mainMinutes)
		plan.EstimatedCalories = estimate.Calories
		plan.CalorieMode = heartrate.ModeHeartRate
		return
	}

	total := 0
	for _, planned := range plan.Main {
		estimate := heartrate.EstimateMET(
			planned.Exercise.METActivity, planned.Exercise.intensity(), p.WeightKg, planned.AllocatedMinutes)
		total += estimate.Calories
	}
	plan.EstimatedCalories = total
	plan.CalorieMode = heartrate.ModeMET
}
