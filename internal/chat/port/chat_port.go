// Package port defines the interfaces the chatbot core consumes. Following
// the hexagonal layout used across this repo, the ChatService depends on
// these ports and never on the concrete Supabase store or websocket hub.
package port

import (
	"context"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
)

// ConversationStore is the document-store boundary the core needs:
// latest-state-by-id plus append.
type ConversationStore interface {
	// GetLatestContext returns the most recent context snapshot for the
	// conversation, or ErrNotFound when the conversation has no records.
	GetLatestContext(ctx context.Context, conversationID string) (*chatdomain.ConversationContext, error)

	// AppendMessage persists one conversation record.
	AppendMessage(ctx context.Context, msg *chatdomain.ConversationMessage) error

	// ListMessages returns the records of one conversation in
	// chronological order.
	ListMessages(ctx context.Context, conversationID string) ([]chatdomain.ConversationMessage, error)
}

// Broadcaster fans a completion notification out to every listener
// subscribed to the conversation id. The websocket hub implements it; a
// no-op implementation is fine for deployments without the realtime layer.
type Broadcaster interface {
	BroadcastCompletion(notification *chatdomain.CompletionNotification)
}
