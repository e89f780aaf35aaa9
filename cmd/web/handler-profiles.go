package main

import (
	"net/http"
	"time"

	"github.com/myrjola/pulsecoach/internal/profile"
)

// profileRequest is the JSON shape accepted when creating or updating a
// profile.
type profileRequest struct {
	DisplayName      string   `json:"display_name"`
	Age              int      `json:"age"`
	WeightKg         float64  `json:"weight_kg"`
	HeightM          float64  `json:"height_m"`
	Gender           string   `json:"gender"`
	FitnessLevel     string   `json:"fitness_level"`
	RestingHeartRate *int     `json:"resting_heart_rate"`
	HealthConditions []string `json:"health_conditions"`
	Preferences      []string `json:"preferences"`
}

type profileResponse struct {
	ID               int64     `json:"id"`
	DisplayName      string    `json:"display_name"`
	Age              int       `json:"age"`
	WeightKg         float64   `json:"weight_kg"`
	HeightM          float64   `json:"height_m"`
	Gender           string    `json:"gender"`
	FitnessLevel     string    `json:"fitness_level"`
	RestingHeartRate *int      `json:"resting_heart_rate"`
	EffectiveResting int       `json:"effective_resting_hr"`
	HealthConditions []string  `json:"health_conditions"`
	Preferences      []string  `json:"preferences"`
	BMI              float64   `json:"bmi"`
	BMICategory      string    `json:"bmi_category"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (req profileRequest) apply(p *profile.Profile) {
	p.DisplayName = req.DisplayName
	p.Age = req.Age
	p.WeightKg = req.WeightKg
	p.HeightM = req.HeightM
	p.Gender = profile.Gender(req.Gender)
	p.FitnessLevel = profile.FitnessLevel(req.FitnessLevel)
	p.RestingHeartRate = req.RestingHeartRate
	p.HealthConditions = p.HealthConditions[:0]
	for _, condition := range req.HealthConditions {
		p.HealthConditions = append(p.HealthConditions, profile.HealthCondition(condition))
	}
	p.Preferences = p.Preferences[:0]
	for _, preference := range req.Preferences {
		p.Preferences = append(p.Preferences, profile.ExercisePreference(preference))
	}
}

func newProfileResponse(p *profile.Profile) profileResponse {
	conditions := make([]string, 0, len(p.HealthConditions))
	for _, condition := range p.HealthConditions {
		conditions = append(conditions, string(condition))
	}
	preferences := make([]string, 0, len(p.Preferences))
	for _, preference := range p.Preferences {
		preferences = append(preferences, string(preference))
	}
	return profileResponse{
		ID:               p.ID,
		DisplayName:      p.DisplayName,
		Age:              p.Age,
		WeightKg:         p.WeightKg,
		HeightM:          p.HeightM,
		Gender:           string(p.Gender),
		FitnessLevel:     string(p.FitnessLevel),
		RestingHeartRate: p.RestingHeartRate,
		EffectiveResting: p.RestingHROrEstimate(),
		HealthConditions: conditions,
		Preferences:      preferences,
		BMI:              p.BMI(),
		BMICategory:      p.BMICategory(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (app *application) profileCreatePOST(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	var p profile.Profile
	req.apply(&p)

	created, err := app.profiles.Create(r.Context(), &p)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, newProfileResponse(created))
}

func (app *application) profileListGET(w http.ResponseWriter, r *http.Request) {
	profiles, err := app.profiles.List(r.Context())
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	responses := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, newProfileResponse(p))
	}
	app.writeJSON(w, r, http.StatusOK, responses)
}

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r, "id")
	if !ok {
		return
	}
	p, err := app.profiles.Get(r.Context(), id)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newProfileResponse(p))
}

func (app *application) profileUpdatePUT(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r, "id")
	if !ok {
		return
	}
	var req profileRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	updated, err := app.profiles.Update(r.Context(), id, func(p *profile.Profile) error {
		req.apply(p)
		return nil
	})
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newProfileResponse(updated))
}

func (app *application) profileDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.profiles.Delete(r.Context(), id); err != nil {
		app.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// profileSelectPOST makes the profile the active one for this session. The
// chatbot tools and the chat pages act on behalf of the selected profile.
func (app *application) profileSelectPOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := app.profiles.Get(r.Context(), id); err != nil {
		app.apiError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyProfileID, id)
	redirect(w, r, "/chat")
}
