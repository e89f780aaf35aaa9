package main

import (
	"net/http"

	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
)

type caloriesRequest struct {
	ProfileID       int64   `json:"profile_id,omitempty"`
	Activity        string  `json:"activity"`
	Intensity       string  `json:"intensity,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	AverageHR       int     `json:"average_hr,omitempty"`
	WeightKg        float64 `json:"weight_kg,omitempty"`
	Age             int     `json:"age,omitempty"`
	Gender          string  `json:"gender,omitempty"`
}

// caloriesPOST estimates energy expenditure. The heart-rate regression is used
// when an average heart rate and a gender are known, the MET tables otherwise.
func (app *application) caloriesPOST(w http.ResponseWriter, r *http.Request) {
	var req caloriesRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	var (
		weightKg = req.WeightKg
		age      = req.Age
		gender   = profile.Gender(req.Gender)
	)
	if req.ProfileID != 0 {
		p, err := app.profiles.Get(r.Context(), req.ProfileID)
		if err != nil {
			app.apiError(w, r, err)
			return
		}
		weightKg = p.WeightKg
		age = p.Age
		gender = p.Gender
	}

	var estimate heartrate.CalorieEstimate
	if req.AverageHR > 0 && gender != profile.GenderUnknown {
		estimate = heartrate.EstimateFromHeartRate(req.AverageHR, weightKg, age, gender, req.DurationMinutes)
	} else {
		estimate = heartrate.EstimateMET(req.Activity, heartrate.Intensity(req.Intensity), weightKg, req.DurationMinutes)
	}
	app.writeJSON(w, r, http.StatusOK, estimate)
}
