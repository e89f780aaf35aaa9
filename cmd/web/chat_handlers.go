package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/myrjola/pulsecoach/internal/chatbot"
	"github.com/myrjola/pulsecoach/internal/contexthelpers"
)

type chatListTemplateData struct {
	BaseTemplateData
	Conversations []chatbot.Conversation
}

type chatConversationTemplateData struct {
	BaseTemplateData
	Conversation chatbot.Conversation
	Messages     []chatbot.ChatMessage
}

// requireProfile resolves the active profile id from the session. Without one
// the user is sent to the home page to pick a profile.
func (app *application) requireProfile(w http.ResponseWriter, r *http.Request) (int64, bool) {
	profileID := contexthelpers.CurrentProfileID(r.Context())
	if profileID == 0 {
		redirect(w, r, "/")
		return 0, false
	}
	return profileID, true
}

// chatGET handles GET requests for the conversation list page.
func (app *application) chatGET(w http.ResponseWriter, r *http.Request) {
	profileID, ok := app.requireProfile(w, r)
	if !ok {
		return
	}

	conversations, err := app.chatbotService.ListConversations(r.Context(), profileID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := chatListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Conversations:    conversations,
	}

	app.render(w, r, http.StatusOK, "chat-list", data)
}

// chatCreatePOST starts a new conversation and redirects to it.
func (app *application) chatCreatePOST(w http.ResponseWriter, r *http.Request) {
	profileID, ok := app.requireProfile(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	title := r.PostForm.Get("title")

	conversation, err := app.chatbotService.CreateConversation(r.Context(), profileID, title)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/chat/%d", conversation.ID))
}

// chatConversationGET handles GET requests for viewing a specific conversation.
func (app *application) chatConversationGET(w http.ResponseWriter, r *http.Request) {
	profileID, ok := app.requireProfile(w, r)
	if !ok {
		return
	}
	conversationID, ok := app.parseIDParam(w, r, "conversationID")
	if !ok {
		return
	}

	conversation, err := app.chatbotService.GetConversation(r.Context(), profileID, conversationID)
	if err != nil {
		if errors.Is(err, chatbot.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	messages, err := app.chatbotService.GetConversationMessages(r.Context(), profileID, conversationID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := chatConversationTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Conversation:     conversation,
		Messages:         messages,
	}

	app.render(w, r, http.StatusOK, "chat-conversation", data)
}

// chatMessagePOST handles POST requests for sending a message in a conversation.
func (app *application) chatMessagePOST(w http.ResponseWriter, r *http.Request) {
	profileID, ok := app.requireProfile(w, r)
	if !ok {
		return
	}
	conversationID, ok := app.parseIDParam(w, r, "conversationID")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	content := r.PostForm.Get("content")
	if content == "" {
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "message content not provided"})
		return
	}

	if _, err := app.chatbotService.SendMessage(r.Context(), profileID, conversationID, content); err != nil {
		if errors.Is(err, chatbot.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.apiError(w, r, err)
		return
	}

	// Follow POST-Redirect-GET pattern - redirect to conversation view
	redirect(w, r, fmt.Sprintf("/chat/%d", conversationID))
}
