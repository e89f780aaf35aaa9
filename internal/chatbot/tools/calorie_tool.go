package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/openai/openai-go/v3"
)

// CalorieTool estimates energy expenditure for an activity.
type CalorieTool struct {
	profiles profile.Store
}

// NewCalorieTool creates the calorie estimation tool.
func NewCalorieTool(profiles profile.Store) *CalorieTool {
	return &CalorieTool{profiles: profiles}
}

type calorieParams struct {
	Activity        string `json:"activity"`
	Intensity       string `json:"intensity,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	AverageHR       int    `json:"average_hr,omitempty"`
}

// Definition describes the tool to the model.
func (t *CalorieTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "estimate_calories",
		Description: openai.String("Estimate calories burned by the current user for an activity. Uses the heart-rate regression when an average heart rate is given, MET tables otherwise."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"activity": map[string]any{
					"type":        "string",
					"description": "Activity name, e.g. running, cycling, swimming, yoga.",
				},
				"intensity": map[string]any{
					"type":        "string",
					"enum":        []string{"very_low", "low", "moderate", "high", "maximum"},
					"description": "Effort level. Defaults to moderate.",
				},
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Duration of the activity in minutes.",
				},
				"average_hr": map[string]any{
					"type":        "integer",
					"description": "Average heart rate during the activity in bpm, if known.",
				},
			},
			"required": []string{"activity", "duration_minutes"},
		},
	}
}

// Execute estimates the calories and returns the estimate as JSON.
func (t *CalorieTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params calorieParams
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	p, err := currentProfile(ctx, t.profiles)
	if err != nil {
		return "", err
	}

	var estimate heartrate.CalorieEstimate
	if params.AverageHR > 0 && p.Gender != profile.GenderUnknown {
		estimate = heartrate.EstimateFromHeartRate(
			params.AverageHR, p.WeightKg, p.Age, p.Gender, params.DurationMinutes)
	} else {
		estimate = heartrate.EstimateMET(
			params.Activity, heartrate.Intensity(params.Intensity), p.WeightKg, params.DurationMinutes)
	}

	encoded, err := json.Marshal(estimate)
	if err != nil {
		return "", fmt.Errorf("marshal calorie estimate: %w", err)
	}
	return string(encoded), nil
}
