package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Chatbot conversation records (table: chat_messages)
// ============================================================
//
// Each processed message produces two rows: one for the visitor's
// message and one for the bot's reply. Both carry the full serialized
// conversation context; loading the newest row restores the state
// machine. There is no row locking, concurrent writers to one
// conversation resolve last-write-wins.

// chatMessageRow maps the chat_messages table columns.
type chatMessageRow struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	ParticipantID  string          `json:"participant_id"`
	Message        string          `json:"message"`
	Response       string          `json:"response"`
	Kind           string          `json:"kind"`
	IntentKind     string          `json:"intent_kind"`
	Confidence     float64         `json:"confidence"`
	Context        json.RawMessage `json:"context"`
	Origin         string          `json:"origin"`
	RemoteAddress  string          `json:"remote_address"`
	Timestamp      string          `json:"timestamp"`
}

func (r chatMessageRow) toDomain() (chatdomain.ConversationMessage, error) {
	var cctx chatdomain.ConversationContext
	if len(r.Context) > 0 {
		if err := json.Unmarshal(r.Context, &cctx); err != nil {
			return chatdomain.ConversationMessage{}, fmt.Errorf("failed to decode conversation context: %w", err)
		}
	}
	return chatdomain.ConversationMessage{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		ParticipantID:  r.ParticipantID,
		Message:        r.Message,
		Response:       r.Response,
		Kind:           r.Kind,
		IntentKind:     r.IntentKind,
		Confidence:     r.Confidence,
		Context:        cctx,
		Metadata: chatdomain.TransportMetadata{
			Origin:        r.Origin,
			RemoteAddress: r.RemoteAddress,
		},
		Timestamp: r.Timestamp,
	}, nil
}

// GetLatestContext restores the conversation context from the newest
// persisted record. Returns ErrNotFound for a conversation with no rows.
func (c *Client) GetLatestContext(ctx context.Context, conversationID string) (*chatdomain.ConversationContext, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLatestContext")
	defer span.End()
	span.SetAttributes(attribute.String("conversation.id", conversationID))

	var cctx *chatdomain.ConversationContext

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("chat_messages?conversation_id=eq.%s&order=timestamp.desc&limit=1",
				url.QueryEscape(conversationID))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				// Empty is the normal outcome for a brand-new
				// conversation: it must not be retried and must not
				// count against the breaker.
				return nil
			}

			var rows []chatMessageRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode chat messages: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}

			msg, err := rows[0].toDomain()
			if err != nil {
				return err
			}
			restored := msg.Context
			cctx = &restored
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/chat", Err: err}
	}
	if cctx == nil {
		// Constructed after the breaker so the caller can distinguish
		// "new conversation" from a store outage.
		return nil, &domain.ErrNotFound{Resource: "conversation", ID: conversationID}
	}
	return cctx, nil
}

// AppendMessage inserts one conversation record.
func (c *Client) AppendMessage(ctx context.Context, msg *chatdomain.ConversationMessage) error {
	ctx, span := tracer.Start(ctx, "Supabase.AppendMessage")
	defer span.End()
	span.SetAttributes(
		attribute.String("conversation.id", msg.ConversationID),
		attribute.String("message.kind", msg.Kind),
	)

	contextJSON, err := json.Marshal(msg.Context)
	if err != nil {
		return fmt.Errorf("failed to encode conversation context: %w", err)
	}

	_, err = c.doPost(ctx, "chat_messages", map[string]any{
		"id":              msg.ID,
		"conversation_id": msg.ConversationID,
		"participant_id":  msg.ParticipantID,
		"message":         msg.Message,
		"response":        msg.Response,
		"kind":            msg.Kind,
		"intent_kind":     msg.IntentKind,
		"confidence":      msg.Confidence,
		"context":         json.RawMessage(contextJSON),
		"origin":          msg.Metadata.Origin,
		"remote_address":  msg.Metadata.RemoteAddress,
		"timestamp":       msg.Timestamp,
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/chat", Err: err}
	}
	return nil
}

// ListMessages returns all records of one conversation, oldest first.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]chatdomain.ConversationMessage, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListMessages")
	defer span.End()
	span.SetAttributes(attribute.String("conversation.id", conversationID))

	var messages []chatdomain.ConversationMessage

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("chat_messages?conversation_id=eq.%s&order=timestamp.asc",
				url.QueryEscape(conversationID))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				messages = []chatdomain.ConversationMessage{}
				return nil
			}

			var rows []chatMessageRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode chat messages: %w", err)
			}

			messages = make([]chatdomain.ConversationMessage, 0, len(rows))
			for _, r := range rows {
				msg, err := r.toDomain()
				if err != nil {
					return err
				}
				messages = append(messages, msg)
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/chat", Err: err}
	}
	return messages, nil
}
