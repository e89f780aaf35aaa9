package main

import (
	"net/http"

	"github.com/myrjola/pulsecoach/internal/contexthelpers"
	"github.com/myrjola/pulsecoach/internal/workout"
)

type recommendationRequest struct {
	ProfileID       int64    `json:"profile_id,omitempty"`
	CurrentHR       int      `json:"current_hr,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	WorkoutType     string   `json:"workout_type,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
}

func (app *application) recommendationsPOST(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	profileID := req.ProfileID
	if profileID == 0 {
		profileID = contexthelpers.CurrentProfileID(r.Context())
	}
	if profileID == 0 {
		app.writeJSON(w, r, http.StatusBadRequest,
			map[string]string{"error": "profile_id required when no profile is selected"})
		return
	}

	equipment := make([]workout.Equipment, 0, len(req.Equipment))
	for _, item := range req.Equipment {
		equipment = append(equipment, workout.Equipment(item))
	}

	plan, err := app.workoutService.RecommendSession(r.Context(), workout.RecommendationRequest{
		ProfileID:          profileID,
		CurrentHR:          req.CurrentHR,
		DurationMinutes:    req.DurationMinutes,
		WorkoutType:        workout.WorkoutType(req.WorkoutType),
		AvailableEquipment: equipment,
	})
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	// Unsafe and degraded plans are ordinary results: the flags are in the body.
	app.writeJSON(w, r, http.StatusOK, plan)
}
