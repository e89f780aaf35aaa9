// Package chatbot implements the AI fitness coach conversations. The engine
// results are exposed to the model through function-calling tools so answers
// stay grounded in computed numbers instead of guesses.
package chatbot

import "time"

// MessageType tells who authored a message in a conversation.
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

// IsValid validates a MessageType.
func (mt MessageType) IsValid() bool {
	switch mt {
	case MessageTypeUser, MessageTypeAssistant:
		return true
	default:
		return false
	}
}

// Conversation is one coaching chat session belonging to a profile.
type Conversation struct {
	ID             int64     `json:"id"`
	ProfileID      int64     `json:"profile_id"`
	Title          *string   `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	ID             int64       `json:"id"`
	ConversationID int64       `json:"conversation_id"`
	MessageType    MessageType `json:"message_type"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"created_at"`
}
