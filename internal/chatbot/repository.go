package chatbot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/myrjola/pulsecoach/internal/sqlite"
)

// ErrNotFound is returned when the conversation does not exist or belongs to
// another profile.
var ErrNotFound = errors.New("conversation not found")

const timestampFormat = "2006-01-02T15:04:05.000Z"

// repository persists conversations and their messages. All queries are
// scoped by profile so one user can never read another's chat.
type repository struct {
	db *sqlite.Database
}

func newRepository(db *sqlite.Database) *repository {
	return &repository{db: db}
}

func (r *repository) createConversation(ctx context.Context, profileID int64, title *string) (Conversation, error) {
	now := time.Now().UTC()
	nowStr := now.Format(timestampFormat)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO conversations (profile_id, title, created_at, last_activity_at)
		VALUES (?, ?, ?, ?)`,
		profileID, title, nowStr, nowStr)
	if err != nil {
		return Conversation{}, fmt.Errorf("insert conversation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Conversation{}, fmt.Errorf("get last insert ID: %w", err)
	}
	return Conversation{
		ID:             id,
		ProfileID:      profileID,
		Title:          title,
		CreatedAt:      now,
		LastActivityAt: now,
	}, nil
}

func (r *repository) getConversation(ctx context.Context, profileID, id int64) (Conversation, error) {
	var (
		conv           Conversation
		createdAtStr   string
		lastActivityAt string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, profile_id, title, created_at, last_activity_at
		FROM conversations
		WHERE id = ? AND profile_id = ?`, id, profileID).Scan(
		&conv.ID,
		&conv.ProfileID,
		&conv.Title,
		&createdAtStr,
		&lastActivityAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Conversation{}, ErrNotFound
	}
	if err != nil {
		return Conversation{}, fmt.Errorf("query conversation: %w", err)
	}
	if conv.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return Conversation{}, fmt.Errorf("parse created_at: %w", err)
	}
	if conv.LastActivityAt, err = time.Parse(timestampFormat, lastActivityAt); err != nil {
		return Conversation{}, fmt.Errorf("parse last_activity_at: %w", err)
	}
	return conv, nil
}

func (r *repository) listConversations(ctx context.Context, profileID int64) (_ []Conversation, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id
		FROM conversations
		WHERE profile_id = ?
		ORDER BY last_activity_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan conversation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	conversations := make([]Conversation, 0, len(ids))
	for _, id := range ids {
		var conv Conversation
		if conv, err = r.getConversation(ctx, profileID, id); err != nil {
			return nil, fmt.Errorf("get conversation %d: %w", id, err)
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}

func (r *repository) touchConversation(ctx context.Context, profileID, id int64) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE conversations
		SET last_activity_at = ?
		WHERE id = ? AND profile_id = ?`,
		time.Now().UTC().Format(timestampFormat), id, profileID)
	if err != nil {
		return fmt.Errorf("update conversation activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) createMessage(ctx context.Context, msg ChatMessage) (ChatMessage, error) {
	msg.CreatedAt = time.Now().UTC()
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO chat_messages (conversation_id, message_type, content, created_at)
		VALUES (?, ?, ?, ?)`,
		msg.ConversationID, string(msg.MessageType), msg.Content, msg.CreatedAt.Format(timestampFormat))
	if err != nil {
		return ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}
	if msg.ID, err = result.LastInsertId(); err != nil {
		return ChatMessage{}, fmt.Errorf("get last insert ID: %w", err)
	}
	return msg, nil
}

func (r *repository) listMessages(ctx context.Context, conversationID int64) (_ []ChatMessage, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, conversation_id, message_type, content, created_at
		FROM chat_messages
		WHERE conversation_id = ?
		ORDER BY id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var messages []ChatMessage
	for rows.Next() {
		var (
			msg          ChatMessage
			messageType  string
			createdAtStr string
		)
		if err = rows.Scan(&msg.ID, &msg.ConversationID, &messageType, &msg.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msg.MessageType = MessageType(messageType)
		if msg.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return messages, nil
}
