// Package service implements the chatbot core: the lexical intent matcher,
// the step responder, and the orchestrating ChatService.
package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/krish0326/i-backend/internal/chat/domain"
)

// Fixed rule confidences. These values are part of the external contract
// (they are persisted with every record), so they must not drift.
const (
	confidenceGreeting  = 0.9
	confidenceStrong    = 0.8
	confidenceModerate  = 0.7
	confidenceContact   = 0.9
	confidenceUnknown   = 0.3
	confidenceThreshold = 0.6
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[\s.\-]?\(?\d{2,4}\)?[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// MatchIntent classifies free-text input against the rules of the current
// step. It is a pure function of (text, step): lower-case the input, apply
// the step's ordered rule list, return the first hit with its fixed
// confidence. No rule hit means "unknown" at 0.3.
func MatchIntent(text string, step domain.ConversationStep) domain.Intent {
	lower := strings.ToLower(text)

	switch step {
	case domain.StepGreeting:
		for _, kw := range []string{"hello", "hi", "hey"} {
			if strings.Contains(lower, kw) {
				return domain.Intent{Kind: "greeting", Confidence: confidenceGreeting}
			}
		}

	case domain.StepProjectType:
		for _, kw := range []string{"residential", "home", "house"} {
			if strings.Contains(lower, kw) {
				return domain.Intent{Kind: "residential", Confidence: confidenceStrong}
			}
		}
		for _, kw := range []string{"commercial", "office", "business"} {
			if strings.Contains(lower, kw) {
				return domain.Intent{Kind: "commercial", Confidence: confidenceStrong}
			}
		}
		for _, kw := range []string{"renovation", "remodel"} {
			if strings.Contains(lower, kw) {
				return domain.Intent{Kind: "renovation", Confidence: confidenceModerate}
			}
		}

	case domain.StepRoomType:
		for _, room := range domain.RoomTypes {
			if strings.Contains(lower, room) {
				return domain.Intent{Kind: room, Confidence: confidenceStrong}
			}
		}

	case domain.StepDesignStyle:
		for _, key := range domain.StyleOrder {
			if strings.Contains(lower, key) {
				return domain.Intent{Kind: key, Confidence: confidenceStrong}
			}
		}

	case domain.StepBudget:
		for _, key := range domain.BudgetOrder {
			if strings.Contains(lower, key) || strings.Contains(lower, strings.ToLower(domain.BudgetBands[key])) {
				return domain.Intent{Kind: key, Confidence: confidenceStrong}
			}
		}
		if amount, ok := firstInteger(lower); ok {
			return domain.Intent{Kind: bucketBudget(amount), Confidence: confidenceModerate}
		}

	case domain.StepTimeline:
		for _, key := range domain.TimelineOrder {
			if strings.Contains(lower, key) || strings.Contains(lower, strings.ToLower(domain.TimelineBands[key])) {
				return domain.Intent{Kind: key, Confidence: confidenceStrong}
			}
		}

	case domain.StepContactInfo:
		if email := emailPattern.FindString(text); email != "" {
			return domain.Intent{Kind: "email", Confidence: confidenceContact, ExtractedValue: email}
		}
		if phone := phonePattern.FindString(text); phone != "" {
			return domain.Intent{Kind: "phone", Confidence: confidenceContact, ExtractedValue: phone}
		}
		if strings.Contains(lower, "name") || strings.Contains(lower, "call me") {
			return domain.Intent{Kind: "name", Confidence: confidenceModerate}
		}
	}

	return domain.Intent{Kind: domain.IntentUnknown, Confidence: confidenceUnknown}
}

// firstInteger extracts the first run of digits in the input.
func firstInteger(text string) (int, bool) {
	raw := digitPattern.FindString(text)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// bucketBudget maps a dollar amount onto a budget band key. Boundaries are
// inclusive on the lower edge: exactly 10000 falls into 10k-25k, exactly
// 100000 into over-100k.
func bucketBudget(amount int) string {
	switch {
	case amount < 10_000:
		return "under-10k"
	case amount < 25_000:
		return "10k-25k"
	case amount < 50_000:
		return "25k-50k"
	case amount < 100_000:
		return "50k-100k"
	default:
		return "over-100k"
	}
}
