// chat_service.go implements the ChatService, the single entry point for
// processing chatbot messages.
//
// ============================================================
// ARCHITECTURE: transport-agnostic orchestration
// ============================================================
//
// The same ProcessMessage call serves both transports:
//
//	POST /v1/chatbot/message  → chat handler → ProcessMessage
//	ws "chat-message" event   → hub          → ProcessMessage
//
// Flow per inbound message:
//  1. Fetch the latest ConversationContext for the conversation id
//     (no record, or a store failure, means a fresh greeting context)
//  2. Classify the message against the current step (MatchIntent)
//  3. Generate the reply and proposed field updates (Respond)
//  4. Commit the proposals, only above the confidence threshold, except
//     for the two free-text steps which always record
//  5. Advance the step and append two records (user + bot)
//  6. On completion, notify the broadcaster for realtime fan-out
//
// Failures are absorbed: the caller always receives a result, in the worst
// case the fixed apology outcome. A transient store outage degrades to
// restarting the questionnaire instead of failing the request.
package service

import (
	"context"
	"errors"
	"time"

	chatdomain "github.com/krish0326/i-backend/internal/chat/domain"
	"github.com/krish0326/i-backend/internal/chat/port"
	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/infra/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var chatTracer = otel.Tracer("chat/service")

// apologyMessage is the fixed reply for absorbed internal failures.
const apologyMessage = "I'm sorry, something went wrong on our end. Could you try sending that again?"

// ChatService orchestrates the chatbot core against the conversation store
// and the realtime broadcaster.
type ChatService struct {
	store       port.ConversationStore
	broadcaster port.Broadcaster
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewChatService creates the ChatService with its dependencies injected.
// broadcaster may be nil when no realtime layer is configured.
func NewChatService(
	store port.ConversationStore,
	broadcaster port.Broadcaster,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		store:       store,
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      logger,
	}
}

// ProcessMessage runs one inbound message through the conversation state
// machine and returns the outcome. It never fails: internal errors are
// converted into the apology result so HTTP callers still get a 200 body.
//
// There is no per-conversation locking. Two concurrent calls for the same
// conversation id each read the latest state, compute independently, and
// persist independently and the last write wins. That race is documented
// and accepted.
func (s *ChatService) ProcessMessage(
	ctx context.Context,
	message, conversationID, participantID string,
	meta chatdomain.TransportMetadata,
) (result *chatdomain.ProcessResult) {
	ctx, span := chatTracer.Start(ctx, "ChatService.ProcessMessage")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("chatbot", time.Since(start))
	}()

	// The matcher and responder are pure, but a malformed stored context
	// must degrade to the apology outcome, never crash the service.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chatbot processing panicked",
				zap.String("conversation_id", conversationID),
				zap.Any("panic", r),
			)
			s.metrics.IncrMessage("error")
			result = apologyResult()
		}
	}()

	cctx, fresh := s.loadContext(ctx, conversationID)

	intent := MatchIntent(message, cctx.CurrentStep)
	step := cctx.CurrentStep
	reply := Respond(intent, message, cctx)

	// Confidence gate, owned here and nowhere else: proposals from the
	// responder are committed only above the threshold. The two free-text
	// steps record verbatim and bypass the gate.
	if step == chatdomain.StepRoomSize || step == chatdomain.StepAdditionalNotes ||
		intent.Confidence > confidenceThreshold {
		cctx.CollectedData = cctx.CollectedData.Merge(reply.Updates)
	}
	cctx.CurrentStep = reply.NextStep

	s.logger.Info("chat message processed",
		zap.String("conversation_id", conversationID),
		zap.String("step", string(step)),
		zap.String("next_step", string(reply.NextStep)),
		zap.String("intent", intent.Kind),
		zap.Float64("confidence", intent.Confidence),
		zap.Bool("complete", reply.Complete),
	)

	s.persist(ctx, message, conversationID, participantID, intent, reply, cctx, meta)

	if fresh {
		s.metrics.IncrConversation("started")
	}
	s.metrics.IncrMessage("processed")
	if reply.Complete {
		s.metrics.IncrConversation("completed")
		if s.broadcaster != nil {
			s.broadcaster.BroadcastCompletion(&chatdomain.CompletionNotification{
				ConversationID: conversationID,
				CollectedData:  cctx.CollectedData,
				NextSteps:      reply.NextSteps,
			})
		}
	}

	return &chatdomain.ProcessResult{
		Response:   reply.Message,
		IntentKind: intent.Kind,
		Confidence: intent.Confidence,
		Context:    cctx,
		IsComplete: reply.Complete,
		NextSteps:  reply.NextSteps,
	}
}

// History returns the persisted records of one conversation.
func (s *ChatService) History(ctx context.Context, conversationID string) ([]chatdomain.ConversationMessage, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.History")
	defer span.End()

	return s.store.ListMessages(ctx, conversationID)
}

// loadContext fetches the latest state for a conversation. A missing
// record or a store failure both yield a fresh context; the second case is
// a deliberate availability-over-consistency tradeoff.
func (s *ChatService) loadContext(ctx context.Context, conversationID string) (chatdomain.ConversationContext, bool) {
	stored, err := s.store.GetLatestContext(ctx, conversationID)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Warn("conversation store unavailable, starting fresh",
				zap.String("conversation_id", conversationID),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("conversation_store")
		}
		return chatdomain.NewContext(), true
	}
	if stored.UserPreferences == nil {
		stored.UserPreferences = map[string]string{}
	}
	return *stored, false
}

// persist appends the user and bot records for one processed message. Both
// carry the same resulting context snapshot. Append failures are logged
// and absorbed; the reply has already been computed and is still served.
func (s *ChatService) persist(
	ctx context.Context,
	message, conversationID, participantID string,
	intent chatdomain.Intent,
	reply chatdomain.StepResponse,
	cctx chatdomain.ConversationContext,
	meta chatdomain.TransportMetadata,
) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	records := []*chatdomain.ConversationMessage{
		{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			ParticipantID:  participantID,
			Message:        message,
			Kind:           chatdomain.MessageKindUser,
			IntentKind:     intent.Kind,
			Confidence:     intent.Confidence,
			Context:        cctx,
			Metadata:       meta,
			Timestamp:      now,
		},
		{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			ParticipantID:  participantID,
			Response:       reply.Message,
			Kind:           chatdomain.MessageKindBot,
			IntentKind:     intent.Kind,
			Confidence:     intent.Confidence,
			Context:        cctx,
			Metadata:       meta,
			Timestamp:      now,
		},
	}

	for _, rec := range records {
		if err := s.store.AppendMessage(ctx, rec); err != nil {
			s.logger.Warn("failed to append conversation record",
				zap.String("conversation_id", conversationID),
				zap.String("kind", rec.Kind),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("conversation_store")
		}
	}
}

func isNotFound(err error) bool {
	var notFound *domain.ErrNotFound
	return errors.As(err, &notFound)
}

func apologyResult() *chatdomain.ProcessResult {
	return &chatdomain.ProcessResult{
		Response:   apologyMessage,
		IntentKind: chatdomain.IntentError,
		Confidence: 0,
		Context:    chatdomain.NewContext(),
		IsComplete: false,
	}
}
