package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/pulsecoach/internal/chatbot"
	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/heartrate"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/testhelpers"
)

func Test_application_apiError(t *testing.T) {
	app := &application{logger: testhelpers.NewLogger(testhelpers.NewWriter(t))}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        &profile.ValidationError{Field: "age", Reason: "must be between 13 and 120"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "engine sentinel",
			err:        fmt.Errorf("compute zones: %w", heartrate.ErrInvalidAge),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing profile",
			err:        fmt.Errorf("load profile: %w", profile.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unreachable assistant",
			err:        fmt.Errorf("generate response: %w: %w", chatbot.ErrAssistantUnavailable, errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "database failure stays internal",
			err:        fmt.Errorf("query exercises: %w", errors.New("database is locked")),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			app.apiError(w, r, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
