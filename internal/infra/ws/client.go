package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second

	maxFrameBytes = 16 * 1024
	sendQueueSize = 16
)

// Client is one websocket connection attached to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	out  chan Envelope
	room string

	mu     sync.Mutex
	closed bool
}

func (c *Client) send(env Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.out <- env:
	default:
		// Slow consumer, drop the frame rather than block the hub.
		c.hub.logger.Warn("ws send queue full, dropping frame",
			zap.String("event", env.Event))
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.out)
}

type joinPayload struct {
	ConversationID string `json:"conversationId"`
}

type chatMessagePayload struct {
	ConversationID string `json:"conversationId"`
	ParticipantID  string `json:"participantId"`
	Message        string `json:"message"`
}

// Handler upgrades HTTP requests to websocket connections and runs the
// event loop against the given processor.
func Handler(hub *Hub, processor MessageProcessor, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := &Client{hub: hub, conn: conn, out: make(chan Envelope, sendQueueSize)}
		hub.metrics.WSConnected()

		go client.writeLoop()
		client.readLoop(r, processor)
	}
}

// readLoop consumes frames until the connection drops.
func (c *Client) readLoop(r *http.Request, processor MessageProcessor) {
	defer func() {
		c.hub.leave(c)
		c.hub.metrics.WSDisconnected()
		c.shutdown()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("ws read error", zap.Error(err))
			}
			return
		}

		switch env.Event {
		case EventJoinConversation:
			var p joinPayload
			if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
				c.send(Envelope{Event: EventError, Data: map[string]string{"message": "conversationId is required"}})
				continue
			}
			c.hub.join(p.ConversationID, c)

		case EventChatMessage:
			var p chatMessagePayload
			if err := json.Unmarshal(env.Data, &p); err != nil || p.Message == "" || p.ConversationID == "" || p.ParticipantID == "" {
				c.send(Envelope{Event: EventError, Data: map[string]string{"message": "conversationId, participantId and message are required"}})
				continue
			}
			if c.room != p.ConversationID {
				c.hub.join(p.ConversationID, c)
			}

			result := processor.ProcessMessage(r.Context(), p.Message, p.ConversationID, p.ParticipantID,
				chatdomain.TransportMetadata{
					Origin:        "websocket",
					RemoteAddress: r.RemoteAddr,
				})
			c.send(Envelope{Event: EventChatResponse, Data: result})

		default:
			c.send(Envelope{Event: EventError, Data: map[string]string{"message": "unknown event: " + env.Event}})
		}
	}
}

// writeLoop serializes outgoing frames and keeps the connection alive
// with pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
