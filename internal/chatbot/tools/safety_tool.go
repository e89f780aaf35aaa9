package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/workout"
	"github.com/openai/openai-go/v3"
)

// SafetyTool judges whether a heart rate reading is safe for the active
// profile and classifies it against the zone table.
type SafetyTool struct {
	service  *workout.Service
	profiles profile.Store
}

// NewSafetyTool creates the safety evaluation tool.
func NewSafetyTool(service *workout.Service, profiles profile.Store) *SafetyTool {
	return &SafetyTool{service: service, profiles: profiles}
}

type safetyParams struct {
	CurrentHR int `json:"current_hr"`
}

type safetyReport struct {
	Verdict heartrate.SafetyVerdict `json:"verdict"`
	Zone    heartrate.ZoneResult    `json:"zone"`
}

// Definition describes the tool to the model.
func (t *SafetyTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "check_heart_rate_safety",
		Description: openai.String("Check whether a heart rate reading is safe for the current user and which training zone it falls into."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"current_hr": map[string]any{
					"type":        "integer",
					"description": "The heart rate reading in bpm.",
				},
			},
			"required": []string{"current_hr"},
		},
	}
}

// Execute evaluates safety and zone placement, returning both as JSON.
func (t *SafetyTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params safetyParams
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	p, err := currentProfile(ctx, t.profiles)
	if err != nil {
		return "", err
	}

	verdict := t.service.EvaluateSafety(
		params.CurrentHR, p.Age, p.FitnessLevel, p.HealthConditions, heartrate.DefaultFormula)

	table, err := t.service.ComputeZones(p.Age, p.RestingHROrEstimate(), "", "")
	if err != nil {
		return "", fmt.Errorf("compute zones: %w", err)
	}
	zone, err := t.service.ClassifyCurrentHR(params.CurrentHR, table)
	if err != nil {
		return "", fmt.Errorf("classify heart rate: %w", err)
	}

	encoded, err := json.Marshal(safetyReport{Verdict: verdict, Zone: zone})
	if err != nil {
		return "", fmt.Errorf("marshal safety report: %w", err)
	}
	return string(encoded), nil
}
