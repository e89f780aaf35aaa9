package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/pulsecoach/internal/chatbot"
	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/workout"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError,
		map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
}

// apiError maps service errors onto HTTP statuses. Caller mistakes come back
// as 400, missing resources as 404, and an unreachable assistant as 502.
// Everything else is logged and reported as 500.
func (app *application) apiError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *profile.ValidationError
	switch {
	case errors.As(err, &validationErr):
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.Is(err, heartrate.ErrInvalidAge),
		errors.Is(err, heartrate.ErrInvalidRestingHR),
		errors.Is(err, heartrate.ErrHeartRateOutOfRange),
		errors.Is(err, workout.ErrInvalidDuration):
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, profile.ErrNotFound), errors.Is(err, chatbot.ErrNotFound):
		app.writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, chatbot.ErrAssistantUnavailable):
		app.logger.LogAttrs(r.Context(), slog.LevelError, "assistant unavailable", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusBadGateway, map[string]string{"error": "assistant unavailable"})
	default:
		app.serverError(w, r, err)
	}
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

// readJSON decodes the request body into dst and rejects unknown fields.
// On failure it sends HTTP 400 and returns false.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return false
	}
	return true
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseIDParam parses an int64 path parameter from the request URL.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr := r.PathValue(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
