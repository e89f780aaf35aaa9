package main

import (
	"net/http"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

type safetyRequest struct {
	ProfileID        int64    `json:"profile_id,omitempty"`
	CurrentHR        int      `json:"current_hr"`
	Age              int      `json:"age,omitempty"`
	FitnessLevel     string   `json:"fitness_level,omitempty"`
	HealthConditions []string `json:"health_conditions,omitempty"`
	Formula          string   `json:"formula,omitempty"`
}

type safetyResponse struct {
	Verdict               heartrate.SafetyVerdict `json:"verdict"`
	HealthRecommendations []string                `json:"health_recommendations,omitempty"`
}

func (app *application) safetyPOST(w http.ResponseWriter, r *http.Request) {
	var req safetyRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	var (
		age        = req.Age
		level      = profile.FitnessLevel(req.FitnessLevel)
		conditions []profile.HealthCondition
		response   safetyResponse
	)
	for _, condition := range req.HealthConditions {
		conditions = append(conditions, profile.HealthCondition(condition))
	}

	if req.ProfileID != 0 {
		p, err := app.profiles.Get(r.Context(), req.ProfileID)
		if err != nil {
			app.apiError(w, r, err)
			return
		}
		age = p.Age
		level = p.FitnessLevel
		conditions = p.HealthConditions
		response.HealthRecommendations = heartrate.HealthRecommendations(p)
	}

	response.Verdict = app.workoutService.EvaluateSafety(
		req.CurrentHR, age, level, conditions, heartrate.Formula(req.Formula))
	app.writeJSON(w, r, http.StatusOK, response)
}
