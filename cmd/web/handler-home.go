package main

import (
	"net/http"

	"github.com/myrjola/pulsecoach/internal/profile"
)

type homeTemplateData struct {
	BaseTemplateData
	Profiles []*profile.Profile
}

// home lists the stored profiles so one can be selected for the session.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	profiles, err := app.profiles.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Profiles:         profiles,
	}

	app.render(w, r, http.StatusOK, "home", data)
}
