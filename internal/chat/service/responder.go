package service

import (
	"fmt"
	"strings"

	"github.com/krish0326/i-backend/internal/chat/domain"
)

// Respond produces the reply for one inbound message: the bot text, the
// next step, a completion flag, and the collected-data updates it proposes.
// It never mutates the context it receives; the ChatService alone decides
// which proposals get committed (see the confidence gate there).
//
// Dispatch is keyed by the conversation's current step, not by the intent:
// the same text means different things on different steps.
func Respond(intent domain.Intent, rawText string, ctx domain.ConversationContext) domain.StepResponse {
	switch ctx.CurrentStep {
	case domain.StepGreeting:
		return respondGreeting(intent)
	case domain.StepProjectType:
		return respondProjectType(intent)
	case domain.StepRoomType:
		return respondRoomType(intent)
	case domain.StepDesignStyle:
		return respondDesignStyle(intent)
	case domain.StepBudget:
		return respondBudget(intent)
	case domain.StepTimeline:
		return respondTimeline(intent)
	case domain.StepRoomSize:
		return respondRoomSize(rawText)
	case domain.StepContactInfo:
		return respondContactInfo(intent, rawText, ctx.CollectedData)
	case domain.StepAdditionalNotes:
		return respondAdditionalNotes(rawText, ctx.CollectedData)
	case domain.StepComplete:
		return respondFallback()
	default:
		// Malformed context (e.g. a record written by an older version).
		return respondFallback()
	}
}

// greeting: any input advances. The wording differs slightly depending on
// whether the visitor actually greeted us, but both variants advance.
func respondGreeting(intent domain.Intent) domain.StepResponse {
	msg := "Welcome to our interior design studio! I'd love to help you plan your project. " +
		"Are you looking for residential, commercial, or renovation design services?"
	if intent.Kind == "greeting" {
		msg = "Hello! Great to meet you. I'm here to help you plan your dream space. " +
			"Are you looking for residential, commercial, or renovation design services?"
	}
	return domain.StepResponse{Message: msg, NextStep: domain.StepProjectType}
}

func respondProjectType(intent domain.Intent) domain.StepResponse {
	switch intent.Kind {
	case "residential", "commercial", "renovation":
		return domain.StepResponse{
			Message: fmt.Sprintf("Wonderful! A %s project it is. Which room would you like to focus on? "+
				"We work on: %s.", intent.Kind, strings.Join(domain.RoomTypes, ", ")),
			NextStep: domain.StepRoomType,
			Updates:  domain.CollectedData{ProjectType: intent.Kind},
		}
	}
	return domain.StepResponse{
		Message: "I want to make sure I point you to the right team. We offer residential, " +
			"commercial, and renovation design services — which one fits your project?",
		NextStep: domain.StepProjectType,
	}
}

func respondRoomType(intent domain.Intent) domain.StepResponse {
	if !isRoomType(intent.Kind) {
		return domain.StepResponse{
			Message: fmt.Sprintf("Which room should we design? You can pick from: %s.",
				strings.Join(domain.RoomTypes, ", ")),
			NextStep: domain.StepRoomType,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — excellent choice! Now, which design style speaks to you?\n\n", capitalize(intent.Kind))
	for _, key := range domain.StyleOrder {
		fmt.Fprintf(&b, "• %s: %s\n", capitalize(key), domain.DesignStyles[key])
	}
	return domain.StepResponse{
		Message:  b.String(),
		NextStep: domain.StepDesignStyle,
		Updates:  domain.CollectedData{RoomType: intent.Kind},
	}
}

func respondDesignStyle(intent domain.Intent) domain.StepResponse {
	desc, ok := domain.DesignStyles[intent.Kind]
	if !ok {
		return domain.StepResponse{
			Message: fmt.Sprintf("I didn't catch a style there. Our styles are: %s. Which one would you like?",
				strings.Join(capitalizeAll(domain.StyleOrder), ", ")),
			NextStep: domain.StepDesignStyle,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s. That will look fantastic!\n\nWhat budget range are you working with?\n\n",
		capitalize(intent.Kind), desc)
	for _, key := range domain.BudgetOrder {
		fmt.Fprintf(&b, "• %s\n", domain.BudgetBands[key])
	}
	return domain.StepResponse{
		Message:  b.String(),
		NextStep: domain.StepBudget,
		Updates:  domain.CollectedData{DesignStyle: intent.Kind},
	}
}

func respondBudget(intent domain.Intent) domain.StepResponse {
	label, ok := domain.BudgetBands[intent.Kind]
	if !ok {
		return domain.StepResponse{
			Message: fmt.Sprintf("Could you tell me your budget range? For example: %s — or just a number.",
				strings.Join(budgetLabels(), ", ")),
			NextStep: domain.StepBudget,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Perfect, we can do a lot with %s. When would you like the project completed?\n\n", label)
	for _, key := range domain.TimelineOrder {
		fmt.Fprintf(&b, "• %s\n", domain.TimelineBands[key])
	}
	return domain.StepResponse{
		Message:  b.String(),
		NextStep: domain.StepTimeline,
		Updates:  domain.CollectedData{Budget: intent.Kind},
	}
}

func respondTimeline(intent domain.Intent) domain.StepResponse {
	label, ok := domain.TimelineBands[intent.Kind]
	if !ok {
		return domain.StepResponse{
			Message: fmt.Sprintf("What timeline works for you? Options: %s.",
				strings.Join(timelineLabels(), ", ")),
			NextStep: domain.StepTimeline,
		}
	}
	return domain.StepResponse{
		Message: fmt.Sprintf("Got it — %s. Roughly how large is the space? "+
			"An approximate size like \"200 sq ft\" is perfect.", label),
		NextStep: domain.StepRoomSize,
		Updates:  domain.CollectedData{Timeline: intent.Kind},
	}
}

// room_size accepts anything: the raw text is recorded verbatim, without
// validation, and the step always advances.
func respondRoomSize(rawText string) domain.StepResponse {
	return domain.StepResponse{
		Message: "Thanks! We're almost done. Could you tell me your name so our " +
			"design team knows who to reach out to?",
		NextStep: domain.StepContactInfo,
		Updates:  domain.CollectedData{RoomSize: rawText},
	}
}

// contact_info is the only two-phase step: name first, then email. While
// the name is missing the raw message is proposed as the name; an email
// match advances regardless.
func respondContactInfo(intent domain.Intent, rawText string, collected domain.CollectedData) domain.StepResponse {
	switch intent.Kind {
	case "email":
		return domain.StepResponse{
			Message: "Thank you! Last question: any special requests or notes about your " +
				"project we should know about?",
			NextStep: domain.StepAdditionalNotes,
			Updates:  domain.CollectedData{Email: intent.ExtractedValue},
		}
	case "phone":
		return domain.StepResponse{
			Message:  "Got your number, thanks! Could you also share your email address?",
			NextStep: domain.StepContactInfo,
			Updates:  domain.CollectedData{Phone: intent.ExtractedValue},
		}
	}

	if collected.Name != "" && collected.Email != "" {
		return domain.StepResponse{
			Message: "We already have your contact details. Any special requests or notes " +
				"about your project we should know about?",
			NextStep: domain.StepAdditionalNotes,
		}
	}

	if collected.Name == "" {
		return domain.StepResponse{
			Message:  fmt.Sprintf("Nice to meet you, %s! And what's the best email address to reach you at?", strings.TrimSpace(rawText)),
			NextStep: domain.StepContactInfo,
			Updates:  domain.CollectedData{Name: rawText},
		}
	}

	return domain.StepResponse{
		Message:  "Could you share your email address so we can send over the proposal?",
		NextStep: domain.StepContactInfo,
	}
}

// additional_notes records the raw text verbatim, completes the
// conversation, and renders the summary from everything collected so far.
func respondAdditionalNotes(rawText string, collected domain.CollectedData) domain.StepResponse {
	var b strings.Builder
	b.WriteString("Thank you! Here's a summary of your project:\n\n")
	fmt.Fprintf(&b, "• Project type: %s\n", collected.ProjectType)
	fmt.Fprintf(&b, "• Room: %s\n", collected.RoomType)
	fmt.Fprintf(&b, "• Style: %s\n", collected.DesignStyle)
	fmt.Fprintf(&b, "• Budget: %s\n", domain.BudgetBands[collected.Budget])
	fmt.Fprintf(&b, "• Timeline: %s\n", domain.TimelineBands[collected.Timeline])
	fmt.Fprintf(&b, "• Room size: %s\n", collected.RoomSize)
	b.WriteString("\nOur team will be in touch very soon!")

	return domain.StepResponse{
		Message:   b.String(),
		NextStep:  domain.StepComplete,
		Complete:  true,
		NextSteps: domain.CompletionNextSteps,
		Updates:   domain.CollectedData{AdditionalNotes: rawText},
	}
}

// respondFallback handles the complete step and any
// contexts in a state the dispatcher does not recognize.
func respondFallback() domain.StepResponse {
	return domain.StepResponse{
		Message: "Let's start planning your next project! Are you looking for residential, " +
			"commercial, or renovation design services?",
		NextStep: domain.StepProjectType,
	}
}

func isRoomType(kind string) bool {
	for _, room := range domain.RoomTypes {
		if room == kind {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func capitalizeAll(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = capitalize(k)
	}
	return out
}

func budgetLabels() []string {
	out := make([]string, 0, len(domain.BudgetOrder))
	for _, key := range domain.BudgetOrder {
		out = append(out, domain.BudgetBands[key])
	}
	return out
}

func timelineLabels() []string {
	out := make([]string, 0, len(domain.TimelineOrder))
	for _, key := range domain.TimelineOrder {
		out = append(out, domain.TimelineBands[key])
	}
	return out
}
