// Package ws provides the websocket transport for the chatbot.
//
// Clients join a conversation room and exchange events as JSON frames:
//
//	{"event": "join-conversation", "data": {"conversationId": "..."}}
//	{"event": "chat-message", "data": {"conversationId": "...", "participantId": "...", "message": "..."}}
//	{"event": "chat-response", "data": {...ProcessResult...}}
//	{"event": "conversation-complete", "data": {...CompletionNotification...}}
//
// The hub fans conversation-complete events out to every member of the
// room; chat-response frames go back to the sender only.
package ws

import (
	"context"
	"sync"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"

	"go.uber.org/zap"
)

// Event names on the wire.
const (
	EventJoinConversation     = "join-conversation"
	EventChatMessage          = "chat-message"
	EventChatResponse         = "chat-response"
	EventConversationComplete = "conversation-complete"
	EventError                = "error"
)

// Envelope is one websocket frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// MessageProcessor runs one chat message through the conversation engine.
// Implemented by chat/service.ChatService.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, message, conversationID, participantID string, meta chatdomain.TransportMetadata) *chatdomain.ProcessResult
}

// Hub tracks connected clients grouped by conversation room.
// Implements chat/port.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(metrics *observability.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		metrics: metrics,
		logger:  logger,
	}
}

func (h *Hub) join(conversationID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.room != "" {
		h.leaveLocked(c.room, c)
	}
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[conversationID] = room
	}
	room[c] = struct{}{}
	c.room = conversationID
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c.room, c)
	c.room = ""
}

func (h *Hub) leaveLocked(conversationID string, c *Client) {
	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}

// Close disconnects every client. Used during graceful shutdown; the
// write loops flush a close frame and exit.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for c := range room {
			c.shutdown()
		}
		delete(h.rooms, id)
	}
}

// BroadcastCompletion pushes a conversation-complete event to every
// client in the conversation's room. Implements port.Broadcaster.
func (h *Hub) BroadcastCompletion(n *chatdomain.CompletionNotification) {
	h.mu.RLock()
	room := h.rooms[n.ConversationID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	env := Envelope{Event: EventConversationComplete, Data: n}
	for _, c := range clients {
		c.send(env)
	}

	h.logger.Info("conversation complete broadcast",
		zap.String("conversation_id", n.ConversationID),
		zap.Int("recipients", len(clients)))
}
