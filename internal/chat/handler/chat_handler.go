// Package handler exposes the chatbot over HTTP.
//
// ============================================================
// CHATBOT ROUTES
// ============================================================
//
// POST /v1/chatbot/message
//   - Body: {"message": "...", "conversationId": "...", "participantId": "..."}
//   - Runs one message through the conversation state machine and returns
//     the full ProcessResult. Internal failures still answer 200 with the
//     apology payload, which the frontend renders as a normal bot message.
//
// GET /v1/chatbot/conversations/{conversationId}
//   - Returns the persisted records of one conversation.
//
// GET /v1/chatbot/stats
//   - Returns the aggregate conversation counters.
//
// The websocket transport (internal/infra/ws) drives the exact same
// ChatService; these routes are the plain request/response mirror of it.
package handler

import (
	"encoding/json"
	"net/http"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/chat/service"
	"github.com/krish0326/i-backend/internal/infra/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("chat/handler")

// MessageRequest is the body of POST /v1/chatbot/message.
type MessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	ParticipantID  string `json:"participantId"`
}

// MessageHandler handles POST /v1/chatbot/message.
func MessageHandler(svc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chatbot/message")
		defer span.End()

		var req MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		if req.ConversationID == "" {
			writeError(w, http.StatusBadRequest, "conversationId is required")
			return
		}
		if req.ParticipantID == "" {
			writeError(w, http.StatusBadRequest, "participantId is required")
			return
		}
		span.SetAttributes(attribute.String("conversation.id", req.ConversationID))

		result := svc.ProcessMessage(ctx, req.Message, req.ConversationID, req.ParticipantID,
			chatdomain.TransportMetadata{
				Origin:        "http",
				RemoteAddress: r.RemoteAddr,
			})

		writeJSON(w, http.StatusOK, result)
	}
}

// HistoryHandler handles GET /v1/chatbot/conversations/{conversationId}.
func HistoryHandler(svc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/chatbot/conversations/{conversationId}")
		defer span.End()

		conversationID := chi.URLParam(r, "conversationId")
		if conversationID == "" {
			writeError(w, http.StatusBadRequest, "conversationId is required")
			return
		}

		messages, err := svc.History(ctx, conversationID)
		if err != nil {
			logger.Error("failed to list conversation", zap.String("conversation_id", conversationID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if messages == nil {
			messages = []chatdomain.ConversationMessage{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
	}
}

// StatsHandler handles GET /v1/chatbot/stats.
func StatsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetChatSnapshot())
	}
}

// --- local helpers, same shape as internal/handler ---

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
