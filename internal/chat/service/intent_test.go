package service

import (
	"testing"

	"github.com/krish0326/i-backend/internal/chat/domain"
)

func TestMatchIntentGreeting(t *testing.T) {
	intent := MatchIntent("Hi there!", domain.StepGreeting)
	if intent.Kind != "greeting" {
		t.Fatalf("expected greeting, got %s", intent.Kind)
	}
	if intent.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", intent.Confidence)
	}
}

func TestMatchIntentProjectType(t *testing.T) {
	tests := []struct {
		input      string
		wantKind   string
		wantConf   float64
	}{
		{"I want a residential design", "residential", 0.8},
		{"it's for my home", "residential", 0.8},
		{"we need an office redone", "commercial", 0.8},
		{"a business space", "commercial", 0.8},
		{"full renovation please", "renovation", 0.7},
		{"remodel the place", "renovation", 0.7},
		{"no idea", "unknown", 0.3},
	}
	for _, tt := range tests {
		intent := MatchIntent(tt.input, domain.StepProjectType)
		if intent.Kind != tt.wantKind {
			t.Errorf("%q: expected kind %s, got %s", tt.input, tt.wantKind, intent.Kind)
		}
		if intent.Confidence != tt.wantConf {
			t.Errorf("%q: expected confidence %v, got %v", tt.input, tt.wantConf, intent.Confidence)
		}
	}
}

func TestMatchIntentRoomType(t *testing.T) {
	intent := MatchIntent("the kitchen, definitely", domain.StepRoomType)
	if intent.Kind != "kitchen" || intent.Confidence != 0.8 {
		t.Fatalf("expected kitchen at 0.8, got %s at %v", intent.Kind, intent.Confidence)
	}
}

func TestMatchIntentStyle(t *testing.T) {
	intent := MatchIntent("I love modern design", domain.StepDesignStyle)
	if intent.Kind != "modern" || intent.Confidence != 0.8 {
		t.Fatalf("expected modern at 0.8, got %s at %v", intent.Kind, intent.Confidence)
	}
}

func TestMatchIntentBudgetKeyword(t *testing.T) {
	intent := MatchIntent("somewhere in the 25k-50k range", domain.StepBudget)
	if intent.Kind != "25k-50k" || intent.Confidence != 0.8 {
		t.Fatalf("expected 25k-50k at 0.8, got %s at %v", intent.Kind, intent.Confidence)
	}
}

// Boundary amounts are inclusive on the lower edge of the next band.
func TestMatchIntentBudgetNumericBoundaries(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9999", "under-10k"},
		{"10000", "10k-25k"},
		{"24999", "10k-25k"},
		{"25000", "25k-50k"},
		{"50000", "50k-100k"},
		{"99999", "50k-100k"},
		{"100000", "over-100k"},
		{"250000", "over-100k"},
	}
	for _, tt := range tests {
		intent := MatchIntent(tt.input, domain.StepBudget)
		if intent.Kind != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.input, tt.want, intent.Kind)
		}
		if intent.Confidence != 0.7 {
			t.Errorf("%s: expected confidence 0.7, got %v", tt.input, intent.Confidence)
		}
	}
}

func TestMatchIntentTimeline(t *testing.T) {
	intent := MatchIntent("asap please", domain.StepTimeline)
	if intent.Kind != "asap" || intent.Confidence != 0.8 {
		t.Fatalf("expected asap at 0.8, got %s at %v", intent.Kind, intent.Confidence)
	}
}

func TestMatchIntentContactEmail(t *testing.T) {
	intent := MatchIntent("reach me at jane.doe+test@example.co.uk thanks", domain.StepContactInfo)
	if intent.Kind != "email" {
		t.Fatalf("expected email, got %s", intent.Kind)
	}
	if intent.ExtractedValue != "jane.doe+test@example.co.uk" {
		t.Errorf("expected extracted address, got %q", intent.ExtractedValue)
	}
	if intent.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", intent.Confidence)
	}
}

func TestMatchIntentContactPhone(t *testing.T) {
	intent := MatchIntent("call 555-123-4567", domain.StepContactInfo)
	if intent.Kind != "phone" || intent.ExtractedValue == "" {
		t.Fatalf("expected phone with extracted value, got %s %q", intent.Kind, intent.ExtractedValue)
	}
}

// The same text classifies differently on different steps.
func TestMatchIntentIsStepScoped(t *testing.T) {
	if got := MatchIntent("kitchen", domain.StepRoomType).Kind; got != "kitchen" {
		t.Errorf("room_type step: expected kitchen, got %s", got)
	}
	if got := MatchIntent("kitchen", domain.StepBudget).Kind; got != domain.IntentUnknown {
		t.Errorf("budget step: expected unknown, got %s", got)
	}
}

func TestMatchIntentUnknownDefault(t *testing.T) {
	intent := MatchIntent("xyzzy", domain.StepDesignStyle)
	if intent.Kind != domain.IntentUnknown || intent.Confidence != 0.3 {
		t.Fatalf("expected unknown at 0.3, got %s at %v", intent.Kind, intent.Confidence)
	}
}
