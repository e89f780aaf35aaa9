package main

import (
	"net/http"

	"github.com/myrjola/pulsecoach/internal/heartrate"
)

// zonesRequest asks for a zone table. Physiology comes either from the body
// or, when profile_id is set, from the stored profile.
type zonesRequest struct {
	ProfileID int64  `json:"profile_id,omitempty"`
	Age       int    `json:"age,omitempty"`
	RestingHR int    `json:"resting_hr,omitempty"`
	Formula   string `json:"formula,omitempty"`
	Method    string `json:"method,omitempty"`
}

// resolve fills age and resting heart rate from the stored profile when a
// profile id is given.
func (app *application) resolveZonesRequest(w http.ResponseWriter, r *http.Request, req *zonesRequest) bool {
	if req.ProfileID == 0 {
		return true
	}
	p, err := app.profiles.Get(r.Context(), req.ProfileID)
	if err != nil {
		app.apiError(w, r, err)
		return false
	}
	req.Age = p.Age
	req.RestingHR = p.RestingHROrEstimate()
	return true
}

func (app *application) zonesPOST(w http.ResponseWriter, r *http.Request) {
	var req zonesRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if !app.resolveZonesRequest(w, r, &req) {
		return
	}

	table, err := app.workoutService.ComputeZones(
		req.Age, req.RestingHR, heartrate.Formula(req.Formula), heartrate.BoundMethod(req.Method))
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, table)
}

type classifyRequest struct {
	zonesRequest
	CurrentHR     int `json:"current_hr"`
	MinutesInZone int `json:"minutes_in_zone,omitempty"`
}

type classifyResponse struct {
	Result           heartrate.ZoneResult `json:"result"`
	Table            heartrate.ZoneTable  `json:"table"`
	Suggestions      []string             `json:"suggestions,omitempty"`
	DurationFeedback string               `json:"duration_feedback,omitempty"`
}

func (app *application) zonesClassifyPOST(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if !app.resolveZonesRequest(w, r, &req.zonesRequest) {
		return
	}

	table, err := app.workoutService.ComputeZones(
		req.Age, req.RestingHR, heartrate.Formula(req.Formula), heartrate.BoundMethod(req.Method))
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	result, err := app.workoutService.ClassifyCurrentHR(req.CurrentHR, table)
	if err != nil {
		app.apiError(w, r, err)
		return
	}

	resp := classifyResponse{Result: result, Table: table}
	if result.Zone != nil {
		resp.Suggestions = result.Zone.ExerciseSuggestions()
		resp.DurationFeedback = result.Zone.DurationFeedback(req.MinutesInZone)
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}
