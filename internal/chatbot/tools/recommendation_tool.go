package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/pulsecoach/internal/contexthelpers"
	"github.com/myrjola/pulsecoach/internal/workout"
	"github.com/openai/openai-go/v3"
)

// RecommendationTool builds a session plan for the active profile.
type RecommendationTool struct {
	service *workout.Service
}

// NewRecommendationTool creates the session recommendation tool.
func NewRecommendationTool(service *workout.Service) *RecommendationTool {
	return &RecommendationTool{service: service}
}

type recommendationParams struct {
	DurationMinutes int      `json:"duration_minutes"`
	WorkoutType     string   `json:"workout_type,omitempty"`
	CurrentHR       int      `json:"current_hr,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
}

// Definition describes the tool to the model.
func (t *RecommendationTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "recommend_session",
		Description: openai.String("Build an exercise session plan for the current user with warm-up, main exercises, and cool-down."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"duration_minutes": map[string]any{
					"type":        "integer",
					"description": "Requested total session length, 10 to 180 minutes.",
				},
				"workout_type": map[string]any{
					"type":        "string",
					"enum":        []string{"cardio", "strength", "mixed", "flexibility", "hiit"},
					"description": "Kind of session. Defaults to mixed.",
				},
				"current_hr": map[string]any{
					"type":        "integer",
					"description": "Current heart rate in bpm, if known.",
				},
				"equipment": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Equipment available to the user, e.g. treadmill, dumbbells.",
				},
			},
			"required": []string{"duration_minutes"},
		},
	}
}

// Execute builds the plan and returns it as JSON.
func (t *RecommendationTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params recommendationParams
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	profileID := contexthelpers.CurrentProfileID(ctx)
	if profileID == 0 {
		return "", errNoProfile
	}

	equipment := make([]workout.Equipment, 0, len(params.Equipment))
	for _, item := range params.Equipment {
		equipment = append(equipment, workout.Equipment(item))
	}

	plan, err := t.service.RecommendSession(ctx, workout.RecommendationRequest{
		ProfileID:          profileID,
		CurrentHR:          params.CurrentHR,
		DurationMinutes:    params.DurationMinutes,
		WorkoutType:        workout.WorkoutType(params.WorkoutType),
		AvailableEquipment: equipment,
	})
	if err != nil {
		return "", fmt.Errorf("recommend session: %w", err)
	}

	encoded, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("marshal session plan: %w", err)
	}
	return string(encoded), nil
}
