package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/infra/ws"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type stubProcessor struct {
	result *chatdomain.ProcessResult
}

func (p *stubProcessor) ProcessMessage(_ context.Context, message, conversationID, participantID string, _ chatdomain.TransportMetadata) *chatdomain.ProcessResult {
	return p.result
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dial(t *testing.T, hub *ws.Hub, processor ws.MessageProcessor) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(ws.Handler(hub, processor, []string{"*"}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func TestChatMessageRoundTrip(t *testing.T) {
	hub := ws.NewHub(observability.NewMetrics(), zap.NewNop())
	processor := &stubProcessor{result: &chatdomain.ProcessResult{
		Response:   "Are you looking for residential, commercial, or renovation design services?",
		IntentKind: "greeting",
		Confidence: 0.9,
	}}
	conn := dial(t, hub, processor)

	err := conn.WriteJSON(ws.Envelope{Event: ws.EventJoinConversation, Data: map[string]string{
		"conversationId": "conv-ws",
	}})
	if err != nil {
		t.Fatal(err)
	}

	err = conn.WriteJSON(ws.Envelope{Event: ws.EventChatMessage, Data: map[string]string{
		"conversationId": "conv-ws",
		"participantId":  "visitor-1",
		"message":        "hello",
	}})
	if err != nil {
		t.Fatal(err)
	}

	f := readFrame(t, conn)
	if f.Event != ws.EventChatResponse {
		t.Fatalf("expected chat-response, got %s", f.Event)
	}
	var result chatdomain.ProcessResult
	if err := json.Unmarshal(f.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.IntentKind != "greeting" || result.Confidence != 0.9 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestBroadcastCompletionReachesRoom(t *testing.T) {
	hub := ws.NewHub(observability.NewMetrics(), zap.NewNop())
	processor := &stubProcessor{result: &chatdomain.ProcessResult{}}
	conn := dial(t, hub, processor)

	err := conn.WriteJSON(ws.Envelope{Event: ws.EventJoinConversation, Data: map[string]string{
		"conversationId": "conv-done",
	}})
	if err != nil {
		t.Fatal(err)
	}

	// The join is processed by the server's read loop; wait for it to take
	// effect before broadcasting.
	notification := &chatdomain.CompletionNotification{
		ConversationID: "conv-done",
		CollectedData:  chatdomain.CollectedData{ProjectType: "residential", Email: "jane@example.com"},
		NextSteps:      chatdomain.CompletionNextSteps,
	}
	// A read deadline failure permanently fails a gorilla connection, so
	// retry the broadcast in the background and read exactly once.
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			hub.BroadcastCompletion(notification)
			time.Sleep(50 * time.Millisecond)
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatal("never received the completion broadcast")
	}
	if f.Event != ws.EventConversationComplete {
		t.Fatalf("expected conversation-complete, got %s", f.Event)
	}
	var got chatdomain.CompletionNotification
	if err := json.Unmarshal(f.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.CollectedData.Email != "jane@example.com" {
		t.Errorf("unexpected notification data: %+v", got)
	}
}

func TestBroadcastCompletionToEmptyRoom(t *testing.T) {
	hub := ws.NewHub(observability.NewMetrics(), zap.NewNop())

	// No clients joined; must be a no-op, not a panic.
	hub.BroadcastCompletion(&chatdomain.CompletionNotification{ConversationID: "nobody-here"})
}

func TestInvalidPayloadsGetErrorFrames(t *testing.T) {
	hub := ws.NewHub(observability.NewMetrics(), zap.NewNop())
	processor := &stubProcessor{result: &chatdomain.ProcessResult{}}
	conn := dial(t, hub, processor)

	// join without a conversation id
	if err := conn.WriteJSON(ws.Envelope{Event: ws.EventJoinConversation, Data: map[string]string{}}); err != nil {
		t.Fatal(err)
	}
	f := readFrame(t, conn)
	if f.Event != ws.EventError {
		t.Errorf("expected error frame, got %s", f.Event)
	}

	// chat-message without a message
	if err := conn.WriteJSON(ws.Envelope{Event: ws.EventChatMessage, Data: map[string]string{
		"conversationId": "c1", "participantId": "p1",
	}}); err != nil {
		t.Fatal(err)
	}
	f = readFrame(t, conn)
	if f.Event != ws.EventError {
		t.Errorf("expected error frame, got %s", f.Event)
	}

	// unknown event
	if err := conn.WriteJSON(ws.Envelope{Event: "start-dancing", Data: nil}); err != nil {
		t.Fatal(err)
	}
	f = readFrame(t, conn)
	if f.Event != ws.EventError {
		t.Errorf("expected error frame, got %s", f.Event)
	}
}
