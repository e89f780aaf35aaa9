package chatbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/sqlite"
)

// ErrAssistantUnavailable marks failures reaching the language model. The
// conversation state is intact, the caller may retry.
var ErrAssistantUnavailable = errors.NewSentinel("assistant unavailable")

// Service handles the coaching conversations.
type Service struct {
	repo   *repository
	logger *slog.Logger
	llm    *llmClient
}

// NewService creates the chatbot service. Tools are registered afterwards via
// RegisterTool to avoid an import cycle with the packages that implement
// them.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	return &Service{
		repo:   newRepository(db),
		logger: logger,
		llm:    newLLMClient(openaiAPIKey, logger),
	}
}

// RegisterTool exposes a function-calling tool to the model.
func (s *Service) RegisterTool(tool Tool) {
	s.llm.RegisterTool(tool)
}

// CreateConversation starts a new conversation for the profile.
func (s *Service) CreateConversation(ctx context.Context, profileID int64, title string) (Conversation, error) {
	var titlePtr *string
	if title != "" {
		titlePtr = &title
	}
	conv, err := s.repo.createConversation(ctx, profileID, titlePtr)
	if err != nil {
		return Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// GetConversation fetches one conversation scoped to the profile.
func (s *Service) GetConversation(ctx context.Context, profileID, id int64) (Conversation, error) {
	conv, err := s.repo.getConversation(ctx, profileID, id)
	if err != nil {
		return Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

// ListConversations lists the profile's conversations, most recent activity
// first.
func (s *Service) ListConversations(ctx context.Context, profileID int64) ([]Conversation, error) {
	conversations, err := s.repo.listConversations(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// GetConversationMessages returns the transcript in chronological order.
func (s *Service) GetConversationMessages(ctx context.Context, profileID, conversationID int64) ([]ChatMessage, error) {
	if _, err := s.repo.getConversation(ctx, profileID, conversationID); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	messages, err := s.repo.listMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// SendMessage saves the user message, generates the assistant reply with the
// full transcript as context, and saves it too.
func (s *Service) SendMessage(ctx context.Context, profileID, conversationID int64, content string) (ChatMessage, error) {
	if _, err := s.repo.getConversation(ctx, profileID, conversationID); err != nil {
		return ChatMessage{}, fmt.Errorf("get conversation: %w", err)
	}

	if _, err := s.repo.createMessage(ctx, ChatMessage{
		ConversationID: conversationID,
		MessageType:    MessageTypeUser,
		Content:        content,
	}); err != nil {
		return ChatMessage{}, fmt.Errorf("save user message: %w", err)
	}

	if err := s.repo.touchConversation(ctx, profileID, conversationID); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to update conversation activity",
			slog.Int64("conversationID", conversationID), slog.Any("error", err))
	}

	history, err := s.repo.listMessages(ctx, conversationID)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("list messages: %w", err)
	}

	reply, err := s.llm.GenerateResponse(ctx, systemPrompt, history)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("generate response: %w: %w", ErrAssistantUnavailable, err)
	}

	assistantMessage, err := s.repo.createMessage(ctx, ChatMessage{
		ConversationID: conversationID,
		MessageType:    MessageTypeAssistant,
		Content:        reply,
	})
	if err != nil {
		return ChatMessage{}, fmt.Errorf("save assistant message: %w", err)
	}
	return assistantMessage, nil
}
