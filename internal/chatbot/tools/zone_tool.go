// Package tools implements the function-calling tools the chat model uses to
// ground its answers in the engine's computed results.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/myrjola/pulsecoach/internal/contexthelpers"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/workout"
	"github.com/openai/openai-go/v3"
)

// errNoProfile is returned when no profile is active in the session.
var errNoProfile = errors.New("no active profile, ask the user to create one first")

// currentProfile loads the session's active profile.
func currentProfile(ctx context.Context, profiles profile.Store) (*profile.Profile, error) {
	profileID := contexthelpers.CurrentProfileID(ctx)
	if profileID == 0 {
		return nil, errNoProfile
	}
	p, err := profiles.Get(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// ZoneTool computes the training zone table for the active profile.
type ZoneTool struct {
	service  *workout.Service
	profiles profile.Store
}

// NewZoneTool creates the zone calculation tool.
func NewZoneTool(service *workout.Service, profiles profile.Store) *ZoneTool {
	return &ZoneTool{service: service, profiles: profiles}
}

type zoneParams struct {
	Formula string `json:"formula,omitempty"`
	Method  string `json:"method,omitempty"`
}

// Definition describes the tool to the model.
func (t *ZoneTool) Definition() openai.FunctionDefinitionParam {
	return openai.FunctionDefinitionParam{
		Name:        "calculate_zones",
		Description: openai.String("Calculate the five heart-rate training zones for the current user."),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"formula": map[string]any{
					"type":        "string",
					"enum":        []string{"tanaka", "classic", "nes"},
					"description": "Maximum heart rate formula. Defaults to tanaka.",
				},
				"method": map[string]any{
					"type":        "string",
					"enum":        []string{"karvonen", "percent_of_max"},
					"description": "Zone bound method. Defaults to karvonen.",
				},
			},
		},
	}
}

// Execute runs the zone calculation and returns the table as JSON.
func (t *ZoneTool) Execute(ctx context.Context, arguments string) (string, error) {
	var params zoneParams
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return "", fmt.Errorf("parse arguments: %w", err)
		}
	}

	p, err := currentProfile(ctx, t.profiles)
	if err != nil {
		return "", err
	}

	table, err := t.service.ComputeZones(
		p.Age, p.RestingHROrEstimate(),
		heartrate.Formula(params.Formula), heartrate.BoundMethod(params.Method))
	if err != nil {
		return "", fmt.Errorf("compute zones: %w", err)
	}

	encoded, err := json.Marshal(table)
	if err != nil {
		return "", fmt.Errorf("marshal zone table: %w", err)
	}
	return string(encoded), nil
}
