package service

import (
	"strings"
	"testing"

	"github.com/krish0326/i-backend/internal/chat/domain"
)

func ctxAt(step domain.ConversationStep) domain.ConversationContext {
	c := domain.NewContext()
	c.CurrentStep = step
	return c
}

// The greeting step advances on any input, recognized or not.
func TestRespondGreetingAlwaysAdvances(t *testing.T) {
	for _, input := range []string{"hello", "asdf qwerty"} {
		intent := MatchIntent(input, domain.StepGreeting)
		reply := Respond(intent, input, ctxAt(domain.StepGreeting))
		if reply.NextStep != domain.StepProjectType {
			t.Errorf("%q: expected advance to project_type, got %s", input, reply.NextStep)
		}
		if !strings.Contains(reply.Message, "residential") {
			t.Errorf("%q: greeting reply should ask for the project type", input)
		}
	}
}

// Unrecognized input re-prompts and stays on every step after greeting.
func TestRespondUnknownNeverAdvances(t *testing.T) {
	steps := []domain.ConversationStep{
		domain.StepProjectType,
		domain.StepRoomType,
		domain.StepDesignStyle,
		domain.StepBudget,
		domain.StepTimeline,
	}
	for _, step := range steps {
		intent := MatchIntent("xyzzy gibberish", step)
		reply := Respond(intent, "xyzzy gibberish", ctxAt(step))
		if reply.NextStep != step {
			t.Errorf("step %s: unknown input advanced to %s", step, reply.NextStep)
		}
		if reply.Complete {
			t.Errorf("step %s: unknown input completed the conversation", step)
		}
		if reply.Updates != (domain.CollectedData{}) {
			t.Errorf("step %s: unknown input proposed updates %+v", step, reply.Updates)
		}
	}
}

func TestRespondProjectTypeRecognized(t *testing.T) {
	intent := MatchIntent("residential please", domain.StepProjectType)
	reply := Respond(intent, "residential please", ctxAt(domain.StepProjectType))
	if reply.NextStep != domain.StepRoomType {
		t.Fatalf("expected advance to room_type, got %s", reply.NextStep)
	}
	if reply.Updates.ProjectType != "residential" {
		t.Errorf("expected proposed project type residential, got %q", reply.Updates.ProjectType)
	}
	for _, room := range domain.RoomTypes {
		if !strings.Contains(reply.Message, room) {
			t.Errorf("reply should list room %q", room)
		}
	}
}

// The style prompt enumerates all twelve styles with their descriptions,
// and choosing one echoes its description back.
func TestRespondStyleRoundTrip(t *testing.T) {
	intent := MatchIntent("kitchen", domain.StepRoomType)
	reply := Respond(intent, "kitchen", ctxAt(domain.StepRoomType))
	for key, desc := range domain.DesignStyles {
		if !strings.Contains(strings.ToLower(reply.Message), key) {
			t.Errorf("style prompt missing style %q", key)
		}
		if !strings.Contains(reply.Message, desc) {
			t.Errorf("style prompt missing description for %q", key)
		}
	}

	intent = MatchIntent("modern", domain.StepDesignStyle)
	styleReply := Respond(intent, "modern", ctxAt(domain.StepDesignStyle))
	if styleReply.NextStep != domain.StepBudget {
		t.Fatalf("expected advance to budget, got %s", styleReply.NextStep)
	}
	if !strings.Contains(styleReply.Message, domain.DesignStyles["modern"]) {
		t.Error("style confirmation should echo the modern description")
	}
	for _, key := range domain.BudgetOrder {
		if !strings.Contains(styleReply.Message, domain.BudgetBands[key]) {
			t.Errorf("budget prompt missing band %q", domain.BudgetBands[key])
		}
	}
}

func TestRespondBudgetEchoesLabel(t *testing.T) {
	intent := MatchIntent("10k-25k", domain.StepBudget)
	reply := Respond(intent, "10k-25k", ctxAt(domain.StepBudget))
	if reply.NextStep != domain.StepTimeline {
		t.Fatalf("expected advance to timeline, got %s", reply.NextStep)
	}
	if !strings.Contains(reply.Message, "$10,000 - $25,000") {
		t.Error("budget confirmation should echo the band label")
	}
}

func TestRespondTimelineAsksForSize(t *testing.T) {
	intent := MatchIntent("3-6 months", domain.StepTimeline)
	reply := Respond(intent, "3-6 months", ctxAt(domain.StepTimeline))
	if reply.NextStep != domain.StepRoomSize {
		t.Fatalf("expected advance to room_size, got %s", reply.NextStep)
	}
	if !strings.Contains(reply.Message, "200 sq ft") {
		t.Error("timeline confirmation should show a size example")
	}
}

// room_size records verbatim and always advances, even for nonsense.
func TestRespondRoomSizeRecordsVerbatim(t *testing.T) {
	intent := MatchIntent("pretty big I guess", domain.StepRoomSize)
	reply := Respond(intent, "pretty big I guess", ctxAt(domain.StepRoomSize))
	if reply.NextStep != domain.StepContactInfo {
		t.Fatalf("expected advance to contact_info, got %s", reply.NextStep)
	}
	if reply.Updates.RoomSize != "pretty big I guess" {
		t.Errorf("expected verbatim room size, got %q", reply.Updates.RoomSize)
	}
}

func TestRespondContactInfoNameThenEmail(t *testing.T) {
	c := ctxAt(domain.StepContactInfo)

	// First message: no name yet, raw text becomes the proposed name.
	intent := MatchIntent("John", domain.StepContactInfo)
	reply := Respond(intent, "John", c)
	if reply.NextStep != domain.StepContactInfo {
		t.Fatalf("expected to stay on contact_info, got %s", reply.NextStep)
	}
	if reply.Updates.Name != "John" {
		t.Errorf("expected proposed name John, got %q", reply.Updates.Name)
	}

	// Second message: an email advances.
	c.CollectedData.Name = "John"
	intent = MatchIntent("john@example.com", domain.StepContactInfo)
	reply = Respond(intent, "john@example.com", c)
	if reply.NextStep != domain.StepAdditionalNotes {
		t.Fatalf("expected advance to additional_notes, got %s", reply.NextStep)
	}
	if reply.Updates.Email != "john@example.com" {
		t.Errorf("expected proposed email, got %q", reply.Updates.Email)
	}
}

func TestRespondContactInfoPhoneStays(t *testing.T) {
	c := ctxAt(domain.StepContactInfo)
	c.CollectedData.Name = "John"
	intent := MatchIntent("555-123-4567", domain.StepContactInfo)
	reply := Respond(intent, "555-123-4567", c)
	if reply.NextStep != domain.StepContactInfo {
		t.Fatalf("phone alone should not advance, got %s", reply.NextStep)
	}
	if reply.Updates.Phone == "" {
		t.Error("expected proposed phone number")
	}
}

func TestRespondAdditionalNotesCompletesWithSummary(t *testing.T) {
	c := ctxAt(domain.StepAdditionalNotes)
	c.CollectedData = domain.CollectedData{
		ProjectType: "residential",
		RoomType:    "kitchen",
		DesignStyle: "modern",
		Budget:      "10k-25k",
		Timeline:    "3-6-months",
		RoomSize:    "200 sq ft",
		Name:        "John",
		Email:       "john@example.com",
	}

	reply := Respond(domain.Intent{Kind: domain.IntentUnknown, Confidence: 0.3}, "no special requests", c)
	if !reply.Complete {
		t.Fatal("expected conversation completion")
	}
	if reply.NextStep != domain.StepComplete {
		t.Fatalf("expected step complete, got %s", reply.NextStep)
	}
	if reply.Updates.AdditionalNotes != "no special requests" {
		t.Errorf("expected verbatim notes, got %q", reply.Updates.AdditionalNotes)
	}
	if len(reply.NextSteps) != len(domain.CompletionNextSteps) {
		t.Errorf("expected %d next steps, got %d", len(domain.CompletionNextSteps), len(reply.NextSteps))
	}
	for _, want := range []string{"residential", "kitchen", "modern", "$10,000 - $25,000", "3-6 months", "200 sq ft"} {
		if !strings.Contains(reply.Message, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

// After completion, any further message restarts the questionnaire.
func TestRespondAfterCompleteRestarts(t *testing.T) {
	reply := Respond(domain.Intent{Kind: domain.IntentUnknown, Confidence: 0.3}, "hello again", ctxAt(domain.StepComplete))
	if reply.NextStep != domain.StepProjectType {
		t.Fatalf("expected restart at project_type, got %s", reply.NextStep)
	}
	if reply.Complete {
		t.Error("restart must not complete the conversation")
	}
}

// Respond must not mutate the context it receives.
func TestRespondIsPure(t *testing.T) {
	c := ctxAt(domain.StepProjectType)
	intent := MatchIntent("residential", domain.StepProjectType)
	Respond(intent, "residential", c)
	if c.CurrentStep != domain.StepProjectType {
		t.Error("Respond mutated the current step")
	}
	if c.CollectedData.ProjectType != "" {
		t.Error("Respond mutated the collected data")
	}
}
