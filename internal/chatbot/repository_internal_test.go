package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/myrjola/pulsecoach/internal/sqlite"
	"github.com/myrjola/pulsecoach/internal/testhelpers"
)

func newTestRepository(t *testing.T) (*repository, int64, int64) {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Error(closeErr)
		}
	})

	profileA := insertProfile(t, db, "Profile A")
	profileB := insertProfile(t, db, "Profile B")
	return newRepository(db), profileA, profileB
}

func insertProfile(t *testing.T, db *sqlite.Database, name string) int64 {
	t.Helper()
	result, err := db.ReadWrite.ExecContext(context.Background(), `
		INSERT INTO profiles (display_name, age, weight_kg, height_m, gender, fitness_level, created_at, updated_at)
		VALUES (?, 30, 70, 1.75, 'female', 'intermediate',
		        '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')`, name)
	if err != nil {
		t.Fatal(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestRepositoryConversationLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, profileA, _ := newTestRepository(t)

	title := "Zone questions"
	conv, err := repo.createConversation(ctx, profileA, &title)
	if err != nil {
		t.Fatal(err)
	}
	if conv.ID == 0 {
		t.Fatal("conversation should have an ID")
	}

	fetched, err := repo.getConversation(ctx, profileA, conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Title == nil || *fetched.Title != title {
		t.Errorf("Title = %v, want %q", fetched.Title, title)
	}

	if _, err = repo.createMessage(ctx, ChatMessage{
		ConversationID: conv.ID,
		MessageType:    MessageTypeUser,
		Content:        "What are my zones?",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err = repo.createMessage(ctx, ChatMessage{
		ConversationID: conv.ID,
		MessageType:    MessageTypeAssistant,
		Content:        "Here they are.",
	}); err != nil {
		t.Fatal(err)
	}

	messages, err := repo.listMessages(ctx, conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("want 2 messages, got %d", len(messages))
	}
	if messages[0].MessageType != MessageTypeUser || messages[1].MessageType != MessageTypeAssistant {
		t.Errorf("messages out of order: %v", messages)
	}
}

func TestRepositoryScopesByProfile(t *testing.T) {
	ctx := context.Background()
	repo, profileA, profileB := newTestRepository(t)

	conv, err := repo.createConversation(ctx, profileA, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Another profile must not see the conversation.
	if _, err = repo.getConversation(ctx, profileB, conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err = repo.touchConversation(ctx, profileB, conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("touch: got %v, want ErrNotFound", err)
	}

	listA, err := repo.listConversations(ctx, profileA)
	if err != nil {
		t.Fatal(err)
	}
	if len(listA) != 1 {
		t.Errorf("profile A should see 1 conversation, got %d", len(listA))
	}
	listB, err := repo.listConversations(ctx, profileB)
	if err != nil {
		t.Fatal(err)
	}
	if len(listB) != 0 {
		t.Errorf("profile B should see no conversations, got %d", len(listB))
	}
}
