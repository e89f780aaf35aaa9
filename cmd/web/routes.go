package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(next)))
		}
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.sessionManager.LoadAndSave(
				app.currentProfile(shared(app.timeout(defaultTimeout)(next)))))
		}
		chat = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.currentProfile(shared(app.timeout(chatTimeout)(next))))))
		}
	)

	mux.Handle("POST /api/profiles", api(http.HandlerFunc(app.profileCreatePOST)))
	mux.Handle("GET /api/profiles", api(http.HandlerFunc(app.profileListGET)))
	mux.Handle("GET /api/profiles/{id}", api(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profiles/{id}", api(http.HandlerFunc(app.profileUpdatePUT)))
	mux.Handle("DELETE /api/profiles/{id}", api(http.HandlerFunc(app.profileDELETE)))
	mux.Handle("POST /api/profiles/{id}/select", api(http.HandlerFunc(app.profileSelectPOST)))

	mux.Handle("POST /api/zones", api(http.HandlerFunc(app.zonesPOST)))
	mux.Handle("POST /api/zones/classify", api(http.HandlerFunc(app.zonesClassifyPOST)))
	mux.Handle("POST /api/safety", api(http.HandlerFunc(app.safetyPOST)))
	mux.Handle("POST /api/recommendations", api(http.HandlerFunc(app.recommendationsPOST)))
	mux.Handle("POST /api/calories", api(http.HandlerFunc(app.caloriesPOST)))

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /chat", chat(http.HandlerFunc(app.chatGET)))
	mux.Handle("POST /chat", chat(http.HandlerFunc(app.chatCreatePOST)))
	mux.Handle("GET /chat/{conversationID}", chat(http.HandlerFunc(app.chatConversationGET)))
	mux.Handle("POST /chat/{conversationID}/messages", chat(http.HandlerFunc(app.chatMessagePOST)))

	// Home route (most specific)
	mux.Handle("GET /{$}", chat(http.HandlerFunc(app.home)))

	return mux
}
