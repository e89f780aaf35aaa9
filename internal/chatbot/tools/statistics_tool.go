package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/pulsecoach/internal/contexthelpers"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/workout"
	"github.com/openai/openai-go/v3"
)

// StatisticsTool summarizes the user's recent planned sessions.
type StatisticsTool struct {
	plans    *workout.SQLitePlanStore
	profiles profile.Store
}

// NewStatisticsTool creates the session statistics tool.
func NewStatisticsTool(plans *workout.SQLitePlanStore, profiles profile.Store) *StatisticsTool {
	return &StatisticsTool{plans: plans, profiles: profiles}
}

type statisticsParams struct {
	Limit int `json:"limit,omitempty"`
}

type sessionStatistics struct {
	SessionCount  int                   `json:"session_count"`
	TotalMinutes  int                   `json:"total_minutes"`
	TotalCalories int                   `json:"total_calories"`
	Sessions      []workout.SessionPlan `json:"sessions"`
}

// Definition describes the tool to the model.
func (t *StatisticsTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "session_statistics",
		Description: openai.String("Summarize the current user's recent planned sessions: counts, minutes, and estimated calories."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "How many recent sessions to include. Defaults to 10.",
				},
			},
		},
	}
}

// Execute aggregates the recent plans and returns them as JSON.
func (t *StatisticsTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params statisticsParams
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return "", fmt.Errorf("parse arguments: %w", err)
		}
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}

	profileID := contexthelpers.CurrentProfileID(ctx)
	if profileID == 0 {
		return "", errNoProfile
	}

	plans, err := t.plans.RecentPlans(ctx, profileID, params.Limit)
	if err != nil {
		return "", fmt.Errorf("load recent plans: %w", err)
	}

	stats := sessionStatistics{Sessions: plans, SessionCount: len(plans)}
	for _, plan := range plans {
		stats.TotalMinutes += plan.TotalDuration
		stats.TotalCalories += plan.EstimatedCalories
	}

	encoded, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal statistics: %w", err)
	}
	return string(encoded), nil
}

// LoadTool scores a completed session as a training load.
type LoadTool struct {
	profiles profile.Store
}

// NewLoadTool creates the training load tool.
func NewLoadTool(profiles profile.Store) *LoadTool {
	return &LoadTool{profiles: profiles}
}

type loadParams struct {
	DurationMinutes int                `json:"duration_minutes"`
	AverageHR       int                `json:"average_hr"`
	Samples         []heartrate.Sample `json:"samples,omitempty"`
}

// Definition describes the tool to the model.
func (t *LoadTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "estimate_training_load",
		Description: openai.String("Score a completed session as a training load (TRIMP) with a recovery recommendation. Provide either duration and average heart rate or a series of timestamped samples."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Length of the completed session in minutes.",
				},
				"average_hr": map[string]any{
					"type":        "integer",
					"description": "Average heart rate during the session in bpm.",
				},
				"samples": map[string]any{
					"type":        "array",
					"description": "Timestamped heart-rate readings from the session. Overrides duration and average when given.",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"value": map[string]any{
								"type":        "integer",
								"description": "Heart rate in bpm.",
							},
							"context": map[string]any{
								"type": "string",
								"enum": []string{"rest", "warmup", "exercise", "recovery"},
							},
							"timestamp": map[string]any{
								"type":        "string",
								"description": "RFC 3339 timestamp of the reading.",
							},
						},
						"required": []string{"value", "timestamp"},
					},
				},
			},
		},
	}
}

// Execute computes the load score and returns it as JSON.
func (t *LoadTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params loadParams
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	p, err := currentProfile(ctx, t.profiles)
	if err != nil {
		return "", err
	}

	maxHR := heartrate.DefaultFormula.MaxHR(p.Age)
	var summary heartrate.LoadSummary
	if len(params.Samples) > 0 {
		summary, err = heartrate.LoadFromSamples(params.Samples, maxHR, p.RestingHROrEstimate())
		if err != nil {
			return "", fmt.Errorf("score sample series: %w", err)
		}
	} else {
		summary = heartrate.TrainingLoad(params.DurationMinutes, params.AverageHR, maxHR, p.RestingHROrEstimate())
	}

	encoded, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal load summary: %w", err)
	}
	return string(encoded), nil
}
