package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/myrjola/pulsecoach/internal/chatbot/tools"
	"github.com/myrjola/pulsecoach/internal/contexthelpers"
	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/testhelpers"
	"github.com/myrjola/pulsecoach/internal/workout"
)

type fakeProfileStore struct {
	profiles map[int64]*profile.Profile
}

func (s *fakeProfileStore) Get(_ context.Context, id int64) (*profile.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, profile.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakeProfileStore) List(context.Context) ([]*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeProfileStore) Create(context.Context, *profile.Profile) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeProfileStore) Update(context.Context, int64, func(p *profile.Profile) error) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeProfileStore) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

type fakePool struct{}

func (fakePool) Query(context.Context, workout.PoolFilter) ([]workout.Exercise, error) {
	return []workout.Exercise{
		{
			ID:          "brisk_walk",
			Name:        "Brisk Walk",
			Type:        workout.TypeCardio,
			Difficulty:  workout.DifficultyLow,
			METActivity: "walking",
			MinDuration: 5,
			MaxDuration: 60,
		},
	}, nil
}

func newFixtures(t *testing.T) (context.Context, *workout.Service, profile.Store) {
	t.Helper()
	resting := 65
	store := &fakeProfileStore{profiles: map[int64]*profile.Profile{
		1: {
			ID:               1,
			DisplayName:      "Test User",
			Age:              28,
			WeightKg:         70,
			HeightM:          1.75,
			Gender:           profile.GenderMale,
			FitnessLevel:     profile.LevelBeginner,
			RestingHeartRate: &resting,
		},
	}}
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	service := workout.NewService(logger, store, fakePool{}, nil)
	ctx := contexthelpers.SetCurrentProfileID(context.Background(), 1)
	return ctx, service, store
}

func TestZoneToolExecute(t *testing.T) {
	ctx, service, store := newFixtures(t)
	tool := tools.NewZoneTool(service, store)

	result, err := tool.Execute(ctx, `{}`)
	if err != nil {
		t.Fatal(err)
	}

	var table heartrate.ZoneTable
	if err = json.Unmarshal([]byte(result), &table); err != nil {
		t.Fatal(err)
	}
	if table.MaxHR != 188 {
		t.Errorf("MaxHR = %d, want 188", table.MaxHR)
	}
	if len(table.Zones) != 5 {
		t.Errorf("want 5 zones, got %d", len(table.Zones))
	}
}

func TestZoneToolRequiresProfile(t *testing.T) {
	_, service, store := newFixtures(t)
	tool := tools.NewZoneTool(service, store)

	if _, err := tool.Execute(context.Background(), `{}`); err == nil {
		t.Error("want an error without an active profile")
	}
}

func TestSafetyToolExecute(t *testing.T) {
	ctx, service, store := newFixtures(t)
	tool := tools.NewSafetyTool(service, store)

	result, err := tool.Execute(ctx, `{"current_hr": 185}`)
	if err != nil {
		t.Fatal(err)
	}

	var report struct {
		Verdict heartrate.SafetyVerdict `json:"verdict"`
		Zone    heartrate.ZoneResult    `json:"zone"`
	}
	if err = json.Unmarshal([]byte(result), &report); err != nil {
		t.Fatal(err)
	}
	if report.Verdict.Safe {
		t.Error("185 bpm should be unsafe for this profile")
	}
	if report.Verdict.RiskLevel != heartrate.RiskCritical {
		t.Errorf("RiskLevel = %s, want critical", report.Verdict.RiskLevel)
	}
	if report.Zone.Outcome != heartrate.OutcomeZone5 {
		t.Errorf("Outcome = %s, want zone_5", report.Zone.Outcome)
	}
}

func TestRecommendationToolExecute(t *testing.T) {
	ctx, service, _ := newFixtures(t)
	tool := tools.NewRecommendationTool(service)

	result, err := tool.Execute(ctx, `{"duration_minutes": 45, "workout_type": "cardio"}`)
	if err != nil {
		t.Fatal(err)
	}

	var plan workout.SessionPlan
	if err = json.Unmarshal([]byte(result), &plan); err != nil {
		t.Fatal(err)
	}
	if plan.TotalDuration != 45 {
		t.Errorf("TotalDuration = %d, want 45", plan.TotalDuration)
	}
	if len(plan.Main) == 0 {
		t.Error("want main exercises")
	}
}

func TestLoadToolExecute(t *testing.T) {
	ctx, _, store := newFixtures(t)
	tool := tools.NewLoadTool(store)

	result, err := tool.Execute(ctx, `{"duration_minutes": 60, "average_hr": 150}`)
	if err != nil {
		t.Fatal(err)
	}

	var summary heartrate.LoadSummary
	if err = json.Unmarshal([]byte(result), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TRIMP <= 0 {
		t.Errorf("TRIMP = %v, want positive", summary.TRIMP)
	}
	if summary.Category == "" {
		t.Error("want a load category")
	}
}

func TestLoadToolExecuteSamples(t *testing.T) {
	ctx, _, store := newFixtures(t)
	tool := tools.NewLoadTool(store)

	result, err := tool.Execute(ctx, `{"samples": [
		{"value": 95, "context": "warmup", "timestamp": "2026-08-01T10:00:00Z"},
		{"value": 150, "context": "exercise", "timestamp": "2026-08-01T10:15:00Z"},
		{"value": 155, "context": "exercise", "timestamp": "2026-08-01T10:30:00Z"},
		{"value": 130, "context": "recovery", "timestamp": "2026-08-01T10:45:00Z"}
	]}`)
	if err != nil {
		t.Fatal(err)
	}

	var summary heartrate.LoadSummary
	if err = json.Unmarshal([]byte(result), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TRIMP <= 0 {
		t.Errorf("TRIMP = %v, want positive", summary.TRIMP)
	}

	if _, err = tool.Execute(ctx, `{"samples": [{"value": 150, "timestamp": "2026-08-01T10:00:00Z"}]}`); err == nil {
		t.Error("expected an error for a single sample")
	}
}

func TestCalorieToolModes(t *testing.T) {
	ctx, _, store := newFixtures(t)
	tool := tools.NewCalorieTool(store)

	metResult, err := tool.Execute(ctx, `{"activity": "running", "intensity": "high", "duration_minutes": 30}`)
	if err != nil {
		t.Fatal(err)
	}
	var metEstimate heartrate.CalorieEstimate
	if err = json.Unmarshal([]byte(metResult), &metEstimate); err != nil {
		t.Fatal(err)
	}
	if metEstimate.Mode != heartrate.ModeMET {
		t.Errorf("Mode = %s, want met", metEstimate.Mode)
	}

	hrResult, err := tool.Execute(ctx, `{"activity": "running", "duration_minutes": 30, "average_hr": 150}`)
	if err != nil {
		t.Fatal(err)
	}
	var hrEstimate heartrate.CalorieEstimate
	if err = json.Unmarshal([]byte(hrResult), &hrEstimate); err != nil {
		t.Fatal(err)
	}
	if hrEstimate.Mode != heartrate.ModeHeartRate {
		t.Errorf("Mode = %s, want heart_rate", hrEstimate.Mode)
	}
}
