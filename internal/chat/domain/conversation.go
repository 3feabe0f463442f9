// Package domain holds the types of the chatbot bounded context.
//
// The chatbot walks a website visitor through a fixed questionnaire:
// project type, room, design style, budget, timeline, room size, contact
// details and final notes. Each inbound message is classified into an
// Intent, answered by the step responder, and the collected answers
// accumulate in CollectedData until the conversation completes.
package domain

// ConversationStep is one phase of the questionnaire. The steps form a
// strict sequence from greeting to complete; only contact_info has an
// internal sub-phase (name first, then email) before advancing.
type ConversationStep string

const (
	StepGreeting        ConversationStep = "greeting"
	StepProjectType     ConversationStep = "project_type"
	StepRoomType        ConversationStep = "room_type"
	StepDesignStyle     ConversationStep = "design_style"
	StepBudget          ConversationStep = "budget"
	StepTimeline        ConversationStep = "timeline"
	StepRoomSize        ConversationStep = "room_size"
	StepContactInfo     ConversationStep = "contact_info"
	StepAdditionalNotes ConversationStep = "additional_notes"
	StepComplete        ConversationStep = "complete"
)

// Intent is the classified meaning of one inbound message. Kind is scoped
// to the step that produced it ("modern" only means something while the
// conversation sits on design_style). Confidence below the commit threshold
// (0.6) is never persisted into CollectedData.
type Intent struct {
	Kind           string  `json:"kind"`
	Confidence     float64 `json:"confidence"`
	ExtractedValue string  `json:"extractedValue,omitempty"`
}

// IntentUnknown is returned when no rule matches the input.
const IntentUnknown = "unknown"

// IntentError marks the apology outcome produced when processing fails.
const IntentError = "error"

// CollectedData accumulates the visitor's structured answers. Fields are
// append-only per conversation: a field is only overwritten by a later
// answer to the same step, never cleared.
type CollectedData struct {
	ProjectType     string `json:"projectType,omitempty"`
	RoomType        string `json:"roomType,omitempty"`
	DesignStyle     string `json:"designStyle,omitempty"`
	Budget          string `json:"budget,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	RoomSize        string `json:"roomSize,omitempty"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`
}

// Merge overlays the non-empty fields of other onto a copy of d.
func (d CollectedData) Merge(other CollectedData) CollectedData {
	if other.ProjectType != "" {
		d.ProjectType = other.ProjectType
	}
	if other.RoomType != "" {
		d.RoomType = other.RoomType
	}
	if other.DesignStyle != "" {
		d.DesignStyle = other.DesignStyle
	}
	if other.Budget != "" {
		d.Budget = other.Budget
	}
	if other.Timeline != "" {
		d.Timeline = other.Timeline
	}
	if other.RoomSize != "" {
		d.RoomSize = other.RoomSize
	}
	if other.Name != "" {
		d.Name = other.Name
	}
	if other.Email != "" {
		d.Email = other.Email
	}
	if other.Phone != "" {
		d.Phone = other.Phone
	}
	if other.AdditionalNotes != "" {
		d.AdditionalNotes = other.AdditionalNotes
	}
	return d
}

// ConversationContext is the full mutable state of one conversation. It is
// owned by the conversation store; the service holds it only for the
// duration of a single message-processing call.
type ConversationContext struct {
	CurrentStep     ConversationStep  `json:"currentStep"`
	CollectedData   CollectedData     `json:"collectedData"`
	UserPreferences map[string]string `json:"userPreferences"`
}

// NewContext returns the initial state for a conversation that has no
// prior record: greeting step, nothing collected.
func NewContext() ConversationContext {
	return ConversationContext{
		CurrentStep:     StepGreeting,
		CollectedData:   CollectedData{},
		UserPreferences: map[string]string{},
	}
}

// Message kinds for persisted conversation records.
const (
	MessageKindUser = "user"
	MessageKindBot  = "bot"
)

// TransportMetadata carries caller-supplied origin identifiers that are
// persisted alongside each record (HTTP remote address, socket id, ...).
type TransportMetadata struct {
	Origin        string `json:"origin,omitempty"`
	RemoteAddress string `json:"remoteAddress,omitempty"`
}

// ConversationMessage is one persisted record. Every processed message
// appends two of these: one for the inbound text (kind "user") and one for
// the generated reply (kind "bot"), both carrying the same resulting
// context snapshot.
type ConversationMessage struct {
	ID             string              `json:"id,omitempty"`
	ConversationID string              `json:"conversationId"`
	ParticipantID  string              `json:"participantId"`
	Message        string              `json:"message"`
	Response       string              `json:"response"`
	Kind           string              `json:"kind"`
	IntentKind     string              `json:"intentKind"`
	Confidence     float64             `json:"confidence"`
	Context        ConversationContext `json:"context"`
	Metadata       TransportMetadata   `json:"metadata"`
	Timestamp      string              `json:"timestamp"`
}

// StepResponse is what the step responder produces for one message: the
// reply text, where the conversation goes next, and the field updates it
// proposes. Proposals are committed by the orchestrator, never by the
// responder itself.
type StepResponse struct {
	Message   string
	NextStep  ConversationStep
	Complete  bool
	NextSteps []string
	Updates   CollectedData
}

// ProcessResult is the outcome returned to the transport for one inbound
// message. It is identical whether the message arrived over HTTP or over
// the websocket.
type ProcessResult struct {
	Response   string              `json:"response"`
	IntentKind string              `json:"intentKind"`
	Confidence float64             `json:"confidence"`
	Context    ConversationContext `json:"context"`
	IsComplete bool                `json:"isComplete"`
	NextSteps  []string            `json:"nextSteps,omitempty"`
}

// CompletionNotification is emitted to the realtime layer when a
// conversation reaches the complete step, for fan-out to everyone
// subscribed to the conversation id.
type CompletionNotification struct {
	ConversationID string        `json:"conversationId"`
	CollectedData  CollectedData `json:"collectedData"`
	NextSteps      []string      `json:"nextSteps"`
}
